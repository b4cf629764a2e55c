package text

import (
	"strings"
	"unicode"

	"github.com/saintfish/chardet"
)

// AutoEncoding は文字コードをデータから推定することを表す名前です
const AutoEncoding = "auto"

// FallbackEncoding は推定できなかった場合の文字コード
const FallbackEncoding = "big5"

// commonRunes は文章に頻出する漢字（繁体字と簡体字）と全角記号です。
// 誤った文字コードで復号すると、これらの文字はほとんど現れません。
const commonRunes = "的一是不了在人有我他她你什麼么這这個个們们中來来上大為为和國国地到以說说時时要就出會会可也對对生能而子那得於于著着下自之年過过發发後后作裡里用道行所然家事成方多去法學学如都同現现當当沒没動动起看定天分還还進进好小其些主樣样心本前開开但因只從从想實实日者意無无力與与長长把十民第公此已工使情明知全三又關关點点正外將将兩两高間间問问很最重物手應应戰战向頭头見见被利什二等新己身加月話话合回信表老給给世位次門门任先海通兒儿原東东聲声走義义入幾几口認认平氣气活更別别打女變变四神何電电數数少才結结受目太再感做接必場场件山指許许保至形便空馬马五眼書书非聽听白卻却達达光放強强即像難难且思王完記记南死張张今切讓让笑飛飞風风快每車车親亲夫令叫愛爱兵百花城府離离請请九八嗎吗找吃六首另七父千錢钱男坐船怕久誰谁若哪急血驚惊傷伤藥药夜喜冷您媽妈啊劍剑仙妖怪師师父娘姑弟兄哥姐妹醒睡門门，。！？、：；「」『』…"

var common = func() map[rune]bool {
	m := make(map[rune]bool)
	for _, r := range commonRunes {
		m[r] = true
	}
	return m
}()

// score は復号結果に含まれる頻出文字の数から、復号できなかった文字と私用領域の文字の数を引いた値です
func score(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == unicode.ReplacementChar, r >= 0xE000 && r <= 0xF8FF:
			n -= 2
		case common[r]:
			n++
		}
	}
	return n
}

// detectorConfidence は chardet が推定した各文字コードの確信度を返します
func detectorConfidence(sample []byte) map[string]int {
	conf := make(map[string]int)
	results, err := chardet.NewTextDetector().DetectAll(sample)
	if err != nil {
		return conf
	}
	for _, r := range results {
		var name string
		switch strings.ToLower(strings.ReplaceAll(r.Charset, "-", "")) {
		case "big5":
			name = "big5"
		case "gb18030", "gbk", "gb2312":
			name = "gbk"
		default:
			continue
		}
		conf[name] = max(conf[name], r.Confidence)
	}
	return conf
}

// Detect は sample の文字コードを big5 と gbk から推定します。
// それぞれで復号して頻出文字の多い方を選び、同点なら chardet の確信度で決めます。
// それでも決まらなければ FallbackEncoding を返します。
func Detect(sample []byte) string {
	names := []string{"big5", "gbk"}
	scores := make(map[string]int, len(names))
	for _, name := range names {
		out, err := encodings[name].NewDecoder().Bytes(sample)
		if err != nil {
			scores[name] = -len(sample)
			continue
		}
		scores[name] = score(string(out))
	}

	switch {
	case scores["big5"] > scores["gbk"]:
		return "big5"
	case scores["gbk"] > scores["big5"]:
		return "gbk"
	}

	conf := detectorConfidence(sample)
	if conf["gbk"] > conf["big5"] {
		return "gbk"
	}
	return FallbackEncoding
}
