// Package sprite はランレングス符号化されたスプライトチャンクを展開します。
//
// チャンク先頭は uint16 のオフセット表で、各値は実際のバイト位置を2で割ったものです。
// 先頭の値はオフセット表自体の大きさにもなるため、フレーム数として扱います。
//
//	frame, err := sprite.DecodeFrame(chunk, 0)
//	if err != nil {
//	    return err
//	}
//	sprite.DrawFrame(frame, screen, 320, 200, x, y)
package sprite

import (
	"encoding/binary"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

const (
	// Transparent は透明ピクセルを表す値。パレット番号は 0〜255 なので衝突しません。
	Transparent uint16 = 0x100

	// maxPixels は1フレームに許すピクセル数の上限
	maxPixels = 1 << 24
)

var frameMagic = [4]byte{0x02, 0x00, 0x00, 0x00}

// Frame は展開済みの1フレームです。
// Pixels は行優先で Width*Height 個あり、Transparent 以外はパレット番号です。
type Frame struct {
	Width  uint32
	Height uint32
	Pixels []uint16
}

// At は (x, y) のピクセルを返します。範囲外は Transparent です。
func (f *Frame) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= int(f.Width) || y >= int(f.Height) {
		return Transparent
	}
	return f.Pixels[y*int(f.Width)+x]
}

// FrameCount はチャンク内のフレーム数を返します
func FrameCount(chunk []byte) uint32 {
	if len(chunk) < 2 {
		return 0
	}
	return uint32(binary.LittleEndian.Uint16(chunk))
}

// DecodeFrame はチャンクから index 番目のフレームを展開します
func DecodeFrame(chunk []byte, index uint32) (*Frame, error) {
	const op = "sprite.DecodeFrame"

	count := FrameCount(chunk)
	if index >= count {
		return nil, codecerr.Index(op, index, count)
	}

	entry := int(index) * 2
	if entry+2 > len(chunk) {
		return nil, codecerr.Data(op, "offset table entry %d runs past chunk (%d bytes)", index, len(chunk))
	}
	offset := int(binary.LittleEndian.Uint16(chunk[entry:])) << 1
	if offset >= len(chunk) {
		return nil, codecerr.Data(op, "frame %d offset %d past chunk (%d bytes)", index, offset, len(chunk))
	}

	f, err := decodeRLE(chunk[offset:])
	if err != nil {
		return nil, codecerr.Data(op, "frame %d: %v", index, err)
	}
	return f, nil
}

// DecodeFrames はチャンク内のフレームを順に展開します。
// 展開できないフレームに達した時点でそれまでのフレームを返します。
func DecodeFrames(chunk []byte) []*Frame {
	count := FrameCount(chunk)
	frames := make([]*Frame, 0, count)
	for i := range count {
		f, err := DecodeFrame(chunk, i)
		if err != nil {
			break
		}
		frames = append(frames, f)
	}
	return frames
}

// decodeRLE は1フレーム分のRLEデータを展開します。
// 出力が Width*Height に達した時点で残りの入力は捨てます。
func decodeRLE(src []byte) (*Frame, error) {
	if len(src) >= 4 && [4]byte(src[:4]) == frameMagic {
		src = src[4:]
	}
	if len(src) < 4 {
		return nil, errFrameHeader
	}

	f := &Frame{
		Width:  uint32(binary.LittleEndian.Uint16(src[0:])),
		Height: uint32(binary.LittleEndian.Uint16(src[2:])),
	}
	size := int(f.Width) * int(f.Height)
	if size > maxPixels {
		return nil, errFrameTooLarge
	}
	f.Pixels = make([]uint16, size)
	for i := range f.Pixels {
		f.Pixels[i] = Transparent
	}

	src = src[4:]
	pos := 0
	for p := 0; p < len(src) && pos < size; {
		count := int(src[p])
		p++

		if count < 0x80 {
			count = min(count, len(src)-p, size-pos)
			for _, b := range src[p : p+count] {
				f.Pixels[pos] = uint16(b)
				pos++
			}
			p += count
		} else {
			// 透明ピクセルは初期値のまま
			pos += min(count&0x7F, size-pos)
		}
	}
	return f, nil
}
