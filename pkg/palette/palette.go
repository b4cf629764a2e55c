// Package palette はPATアーカイブの6ビットVGAパレットを読み込みます。
package palette

import (
	"image/color"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

const (
	// Colors はパレットの色数
	Colors = 256

	// RawSize は1枚分のパレットのバイト数
	RawSize = Colors * 3
)

// RGB は8ビットに拡張済みの色です
type RGB struct {
	R, G, B uint8
}

// Palette は256色のパレットです
type Palette [Colors]RGB

// FromRaw は先頭768バイトの6ビットRGBを8ビットに拡張して読み込みます
func FromRaw(b []byte) (Palette, error) {
	var p Palette
	if len(b) < RawSize {
		return p, codecerr.Data("palette.FromRaw", "need %d bytes, have %d", RawSize, len(b))
	}
	for i := range p {
		p[i] = RGB{R: b[i*3] << 2, G: b[i*3+1] << 2, B: b[i*3+2] << 2}
	}
	return p, nil
}

// FromRawNight は昼夜2枚を持つチャンクから夜のパレットを読み込みます
func FromRawNight(b []byte) (Palette, error) {
	if len(b) < 2*RawSize {
		return Palette{}, codecerr.Data("palette.FromRawNight", "need %d bytes, have %d", 2*RawSize, len(b))
	}
	return FromRaw(b[RawSize:])
}

// HasNight はチャンクが夜のパレットを含むか判定します
func HasNight(b []byte) bool {
	return len(b) >= 2*RawSize
}

// Color は image/color のパレットに変換します
func (p *Palette) Color() color.Palette {
	pal := make(color.Palette, Colors)
	for i, c := range p {
		pal[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return pal
}
