// Package tilemap はMAPアーカイブのマップと、GOPアーカイブのタイル画像を組み合わせて扱います。
//
// マップは 128行×64列 のセルで、各セルは左右半分（h=0, h=1）の2つの uint32 を持ちます。
// 1つの値から下層（layer 0）と上層（layer 1）のタイル番号を取り出します。
package tilemap

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
	"github.com/shiroemons/go-mkf/pkg/sprite"
)

const (
	// Width はマップの列数
	Width = 64
	// Height はマップの行数
	Height = 128

	cells = Width * Height * 2

	// ChunkSize は展開済みマップチャンクの必要バイト数
	ChunkSize = cells * 4

	tileWidth  = 32
	tileHeight = 16
)

// ChunkSource はマップやタイルを読み込むアーカイブです。*mkf.Archive が満たします。
type ChunkSource interface {
	ChunkCount() uint32
	ReadChunk(index uint32) ([]byte, error)
	ReadChunkDecompressed(index uint32) ([]byte, error)
}

// Map は展開済みのマップとタイル画像です
type Map struct {
	Index uint32
	tiles []uint32
	// Frames はタイル画像。番号はSpriteIndexの値に対応します。
	Frames []*sprite.Frame
}

// Load は maps の index 番目（YJ_1圧縮）と tiles の index 番目（非圧縮）からマップを読み込みます
func Load(maps, tiles ChunkSource, index uint32) (*Map, error) {
	const op = "tilemap.Load"

	if n := maps.ChunkCount(); index >= n {
		return nil, codecerr.Index(op, index, n)
	}
	if n := tiles.ChunkCount(); index >= n {
		return nil, codecerr.Index(op, index, n)
	}

	mapChunk, err := maps.ReadChunkDecompressed(index)
	if err != nil {
		return nil, err
	}
	tileChunk, err := tiles.ReadChunk(index)
	if err != nil {
		return nil, err
	}
	return Decode(mapChunk, tileChunk, index)
}

// Decode は展開済みのマップチャンクとタイルチャンクからマップを作成します
func Decode(mapChunk, tileChunk []byte, index uint32) (*Map, error) {
	const op = "tilemap.Decode"

	if len(mapChunk) < ChunkSize {
		return nil, codecerr.Data(op, "map %d needs %d bytes, have %d", index, ChunkSize, len(mapChunk))
	}

	// タイルが1枚でも壊れていればマップ全体を読み込み失敗とする
	count := sprite.FrameCount(tileChunk)
	frames := make([]*sprite.Frame, count)
	for i := range count {
		f, err := sprite.DecodeFrame(tileChunk, i)
		if err != nil {
			return nil, codecerr.Data(op, "map %d tile %d: %w", index, i, err)
		}
		frames[i] = f
	}

	m := &Map{
		Index:  index,
		tiles:  make([]uint32, cells),
		Frames: frames,
	}
	for i := range m.tiles {
		m.tiles[i] = binary.LittleEndian.Uint32(mapChunk[i*4:])
	}
	return m, nil
}

// SpriteIndex はセルの値からタイル番号を求めます。
// layer 1 で -1 の場合はタイルがないことを表します。
func SpriteIndex(value uint32, layer int) int {
	if layer != 0 {
		value >>= 16
		return int(value&0xFF|(value>>4)&0x100) - 1
	}
	return int(value&0xFF | (value>>4)&0x100)
}

// Cell はセルの生の値を返します
func (m *Map) Cell(x, y, h int) (uint32, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height || h < 0 || h > 1 {
		return 0, false
	}
	return m.tiles[(y*Width+x)*2+h], true
}

// Tile は (x, y, h) のタイル画像を返します。
// 範囲外、またはタイル番号に対応する画像がない場合は false です。
func (m *Map) Tile(x, y, h, layer int) (*sprite.Frame, bool) {
	v, ok := m.Cell(x, y, h)
	if !ok {
		return nil, false
	}
	i := SpriteIndex(v, layer)
	if i < 0 || i >= len(m.Frames) {
		return nil, false
	}
	return m.Frames[i], true
}

// Draw は view の範囲のマップを dst に描画します。
// タイルがない位置には (0, 0, 0) のタイルを描きます。
func (m *Map) Draw(dst []byte, dw, dh int, view image.Rectangle, layer int) {
	sy := view.Min.Y/tileHeight - 1
	ey := view.Max.Y/tileHeight + 2
	sx := view.Min.X/tileWidth - 1
	ex := view.Max.X/tileWidth + 2

	yPos := sy*tileHeight - tileHeight/2 - view.Min.Y
	for y := sy; y < ey; y++ {
		for h := range 2 {
			xPos := sx*tileWidth + h*tileWidth/2 - tileWidth/2 - view.Min.X
			for x := sx; x < ex; x++ {
				f, ok := m.Tile(x, y, h, layer)
				if !ok {
					f, ok = m.Tile(0, 0, 0, layer)
				}
				if ok {
					sprite.DrawFrame(f, dst, dw, dh, xPos, yPos)
				}
				xPos += tileWidth
			}
			yPos += tileHeight / 2
		}
	}
}

// Render は view の範囲を下層、上層の順に描画したパレット画像を返します
func (m *Map) Render(pal color.Palette, view image.Rectangle) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, view.Dx(), view.Dy()), pal)
	for layer := range 2 {
		m.Draw(img.Pix, view.Dx(), view.Dy(), view, layer)
	}
	return img
}

// Bounds はマップ全体を覆うピクセル範囲を返します
func Bounds() image.Rectangle {
	return image.Rect(0, 0, Width*tileWidth, Height*tileHeight)
}
