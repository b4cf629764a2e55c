package sprite

import (
	"image"
	"image/color"
)

// DrawFrame はフレームを dst の (x, y) を左上として描画します。
// dst は幅 dw、高さ dh のパレット番号バッファです。
// 透明ピクセルは書き込まず、はみ出した部分は切り取ります。
func DrawFrame(f *Frame, dst []byte, dw, dh, x, y int) {
	fw, fh := int(f.Width), int(f.Height)
	if dw <= 0 || dh <= 0 || x+fw <= 0 || x >= dw || y+fh <= 0 || y >= dh {
		return
	}

	minX, minY := max(x, 0), max(y, 0)
	maxX, maxY := min(x+fw, dw), min(y+fh, dh)
	for dy := minY; dy < maxY; dy++ {
		row := (dy - y) * fw
		for dx := minX; dx < maxX; dx++ {
			d := dy*dw + dx
			if d >= len(dst) {
				return
			}
			if p := f.Pixels[row+dx-x]; p < Transparent {
				dst[d] = byte(p)
			}
		}
	}
}

// Image はパレットを適用したフレームの画像を返します。透明ピクセルはアルファ0です。
func (f *Frame) Image(pal color.Palette) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(f.Width), int(f.Height)))
	for i, p := range f.Pixels {
		if p >= Transparent || int(p) >= len(pal) {
			continue
		}
		x, y := i%int(f.Width), i/int(f.Width)
		img.Set(x, y, pal[p])
	}
	return img
}
