package app

import "errors"

var (
	// ErrNoArchives はデータディレクトリにアーカイブがない場合のエラー
	ErrNoArchives = errors.New("データディレクトリにMKFファイルがありません")

	// ErrEmptyChunk は空のチャンクを処理しようとした場合のエラー
	ErrEmptyChunk = errors.New("チャンクが空です")

	// ErrNoFrames はチャンクにフレームが含まれない場合のエラー
	ErrNoFrames = errors.New("フレームが見つかりませんでした")

	// ErrExtract はチャンクの抽出に失敗した場合のエラー
	ErrExtract = errors.New("チャンクの抽出に失敗しました")

	// ErrSaveImage は画像の保存に失敗した場合のエラー
	ErrSaveImage = errors.New("画像の保存に失敗しました")

	// ErrUnknownTextKind は未知のテキスト種別が指定された場合のエラー
	ErrUnknownTextKind = errors.New("テキストの種別は words か messages です")
)
