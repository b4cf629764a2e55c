package sprite

import (
	"encoding/binary"
	"math"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

const maxRun = 0x7F

// EncodeFrame はフレームをRLE形式に符号化します
func EncodeFrame(f *Frame) ([]byte, error) {
	if f.Width > math.MaxUint16 || f.Height > math.MaxUint16 {
		return nil, codecerr.Data("sprite.EncodeFrame", "frame %dx%d too large", f.Width, f.Height)
	}

	out := binary.LittleEndian.AppendUint16(nil, uint16(f.Width))
	out = binary.LittleEndian.AppendUint16(out, uint16(f.Height))

	px := f.Pixels
	for len(px) > 0 {
		n := 1
		if px[0] >= Transparent {
			for n < len(px) && n < maxRun && px[n] >= Transparent {
				n++
			}
			out = append(out, 0x80|byte(n))
		} else {
			for n < len(px) && n < maxRun && px[n] < Transparent {
				n++
			}
			out = append(out, byte(n))
			for _, p := range px[:n] {
				out = append(out, byte(p))
			}
		}
		px = px[n:]
	}
	return out, nil
}

// Encode はフレーム列をスプライトチャンクにまとめます
func Encode(frames []*Frame) ([]byte, error) {
	const op = "sprite.Encode"

	if len(frames) == 0 {
		return nil, codecerr.Data(op, "no frames")
	}

	table := 2 * len(frames)
	out := make([]byte, table)
	for i, f := range frames {
		data, err := EncodeFrame(f)
		if err != nil {
			return nil, err
		}
		// オフセットは2で割って格納するため偶数位置に揃える
		if len(out)%2 != 0 {
			out = append(out, 0)
		}
		if len(out)>>1 > math.MaxUint16 {
			return nil, codecerr.Data(op, "chunk too large at frame %d", i)
		}
		binary.LittleEndian.PutUint16(out[2*i:], uint16(len(out)>>1))
		out = append(out, data...)
	}
	return out, nil
}
