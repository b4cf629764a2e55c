package assets

// KnownArchives はデータディレクトリに置かれるアーカイブとその内容です
var KnownArchives = map[string]string{
	"ABC":  "敵のスプライト",
	"BALL": "アイテム画像",
	"DATA": "各種テーブル",
	"F":    "戦闘中の味方スプライト",
	"FBP":  "戦闘背景（320x200、YJ_1圧縮）",
	"FIRE": "魔法エフェクト",
	"GOP":  "マップのタイル画像",
	"MAP":  "マップ（YJ_1圧縮）",
	"MGO":  "キャラクターのスプライト",
	"MIDI": "BGM",
	"PAT":  "パレット",
	"RGM":  "顔グラフィック",
	"RNG":  "ムービー（差分フレーム）",
	"SSS":  "イベントオブジェクト・シーン・スクリプト",
}

// Description はアーカイブの説明を返します。未知のアーカイブは空文字列です。
func Description(name string) string {
	return KnownArchives[name]
}
