// Package text はWORD.DATとM.MSGの文字列を読み込みます。
//
// 文字列は中国語のレガシー文字コード（繁体字版はBig5、簡体字版はGBK）で格納されています。
package text

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

// WordSize はWORD.DATの1語のバイト数
const WordSize = 10

// DefaultEncoding は既定の文字コード名。データから推定します。
const DefaultEncoding = AutoEncoding

var encodings = map[string]encoding.Encoding{
	"big5": traditionalchinese.Big5,
	"gbk":  simplifiedchinese.GBK,
}

// Encodings は対応している文字コード名を返します
func Encodings() []string {
	return []string{AutoEncoding, "big5", "gbk"}
}

// Decoder は文字コードを指定して文字列を復号します。
// "auto" の Decoder は復号するデータから文字コードを推定します。
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder は文字コード名から Decoder を作成します。空文字列は DefaultEncoding です。
func NewDecoder(name string) (*Decoder, error) {
	name = strings.ToLower(name)
	if name == "" {
		name = DefaultEncoding
	}
	if name == AutoEncoding {
		return &Decoder{name: name}, nil
	}
	enc, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Resolve は文字コードが決まった Decoder を返します。
// "auto" なら sample から推定し、それ以外は自身を返します。
func (d *Decoder) Resolve(sample []byte) *Decoder {
	if d.enc != nil {
		return d
	}
	name := Detect(sample)
	return &Decoder{name: name, enc: encodings[name]}
}

// Name は文字コード名を返します
func (d *Decoder) Name() string {
	return d.name
}

// Decode はバイト列をUTF-8文字列に変換します
func (d *Decoder) Decode(b []byte) (string, error) {
	d = d.Resolve(b)
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", codecerr.Data("text.Decode", "%s: %v", d.name, err)
	}
	return string(out), nil
}

// DecodeWords はWORD.DATを10バイトごとの語に分割して復号します。
// 末尾のNULと空白は取り除き、端数のバイトは無視します。
func (d *Decoder) DecodeWords(data []byte) ([]string, error) {
	d = d.Resolve(data)
	words := make([]string, 0, len(data)/WordSize)
	for i := 0; i+WordSize <= len(data); i += WordSize {
		rec := data[i : i+WordSize]
		if n := bytes.IndexByte(rec, 0); n >= 0 {
			rec = rec[:n]
		}
		s, err := d.Decode(bytes.TrimRight(rec, " "))
		if err != nil {
			return nil, err
		}
		words = append(words, s)
	}
	return words, nil
}

// DecodeMessages はオフセット表（uint32の配列）に従ってM.MSGをメッセージに分割します。
// メッセージ k は offsets[k] から offsets[k+1] までです。
func (d *Decoder) DecodeMessages(msg, offsets []byte) ([]string, error) {
	const op = "text.DecodeMessages"

	d = d.Resolve(msg)

	n := len(offsets) / 4
	if n < 2 {
		return []string{}, nil
	}
	msgs := make([]string, 0, n-1)
	start := binary.LittleEndian.Uint32(offsets)
	for k := 1; k < n; k++ {
		end := binary.LittleEndian.Uint32(offsets[k*4:])
		if end < start {
			return nil, codecerr.Data(op, "message %d offsets decrease (%d > %d)", k-1, start, end)
		}
		if int64(end) > int64(len(msg)) {
			return nil, codecerr.Data(op, "message %d ends at %d past %d bytes", k-1, end, len(msg))
		}
		s, err := d.Decode(msg[start:end])
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, s)
		start = end
	}
	return msgs, nil
}
