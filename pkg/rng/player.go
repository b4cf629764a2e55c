package rng

import (
	"image"
	"image/color"
	"io"
)

const (
	// DefaultWidth はRNG動画の標準の幅
	DefaultWidth = 320
	// DefaultHeight はRNG動画の標準の高さ
	DefaultHeight = 200
)

// SubChunkReader はRNGアーカイブのチャンクからフレームを読み込みます。
// *mkf.Archive が満たします。
type SubChunkReader interface {
	SubCount(index uint32) (uint32, error)
	ReadSubChunk(index, sub uint32) ([]byte, error)
}

// Player は1つの動画チャンクのフレームを順に1枚のバッファへ適用します
type Player struct {
	src    SubChunkReader
	chunk  uint32
	count  uint32
	next   uint32
	width  int
	height int
	frame  []byte
}

// NewPlayer は動画チャンク chunk を再生する Player を作成します
func NewPlayer(src SubChunkReader, chunk uint32, width, height int) (*Player, error) {
	count, err := src.SubCount(chunk)
	if err != nil {
		return nil, err
	}
	return &Player{
		src:    src,
		chunk:  chunk,
		count:  count,
		width:  width,
		height: height,
		frame:  make([]byte, width*height),
	}, nil
}

// FrameCount はフレーム数を返します
func (p *Player) FrameCount() uint32 {
	return p.count
}

// Next は次のフレームを適用し、その番号を返します。
// 全フレームを適用し終えると io.EOF を返します。
// 空のフレームはバッファを変更しません。
func (p *Player) Next() (uint32, error) {
	if p.next >= p.count {
		return 0, io.EOF
	}
	index := p.next
	data, err := p.src.ReadSubChunk(p.chunk, index)
	if err != nil {
		return 0, err
	}
	if len(data) > 0 {
		if err := Decode(data, p.frame); err != nil {
			return 0, err
		}
	}
	p.next++
	return index, nil
}

// Frame は現在のフレームのピクセル（パレット番号）を返します。
// 返されるスライスは次の Next で書き換えられます。
func (p *Player) Frame() []byte {
	return p.frame
}

// Reset は先頭のフレームから再生し直します
func (p *Player) Reset() {
	p.next = 0
	clear(p.frame)
}

// Image は現在のフレームをパレット画像として複製します
func (p *Player) Image(pal color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, p.width, p.height), pal)
	copy(img.Pix, p.frame)
	return img
}
