package sprite

import (
	"bytes"
	"errors"
	"image/color"
	"reflect"
	"testing"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

const T = Transparent

// chunkOf は1フレーム分のRLEデータを持つチャンクを作成します
func chunkOf(rle ...byte) []byte {
	return append([]byte{0x01, 0x00}, rle...)
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		name  string
		chunk []byte
		want  uint32
	}{
		{"空", nil, 0},
		{"1バイト", []byte{0x05}, 0},
		{"3フレーム", []byte{0x03, 0x00, 0xFF}, 3},
		{"上位バイト", []byte{0x00, 0x01}, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrameCount(tt.chunk); got != tt.want {
				t.Errorf("FrameCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name  string
		chunk []byte
		want  *Frame
	}{
		{
			name:  "リテラルのみ",
			chunk: chunkOf(2, 0, 1, 0, 2, 0x10, 0x20),
			want:  &Frame{Width: 2, Height: 1, Pixels: []uint16{0x10, 0x20}},
		},
		{
			name:  "透明とリテラル",
			chunk: chunkOf(2, 0, 2, 0, 0x81, 1, 0x05, 0x82),
			want:  &Frame{Width: 2, Height: 2, Pixels: []uint16{T, 5, T, T}},
		},
		{
			name:  "マジックナンバーを読み飛ばす",
			chunk: chunkOf(0x02, 0, 0, 0, 1, 0, 1, 0, 1, 0x33),
			want:  &Frame{Width: 1, Height: 1, Pixels: []uint16{0x33}},
		},
		{
			name:  "書かれなかったピクセルは透明",
			chunk: chunkOf(3, 0, 1, 0, 1, 0x44),
			want:  &Frame{Width: 3, Height: 1, Pixels: []uint16{0x44, T, T}},
		},
		{
			name:  "リテラルが入力より長い場合は切り詰める",
			chunk: chunkOf(3, 0, 1, 0, 5, 0x01, 0x02),
			want:  &Frame{Width: 3, Height: 1, Pixels: []uint16{1, 2, T}},
		},
		{
			name:  "出力を超えるリテラルは切り詰める",
			chunk: chunkOf(2, 0, 1, 0, 3, 7, 8, 9, 0x01, 0x0A),
			want:  &Frame{Width: 2, Height: 1, Pixels: []uint16{7, 8}},
		},
		{
			name:  "出力を超える透明は切り詰める",
			chunk: chunkOf(2, 0, 1, 0, 1, 6, 0xFF),
			want:  &Frame{Width: 2, Height: 1, Pixels: []uint16{6, T}},
		},
		{
			name:  "大きさ0のフレーム",
			chunk: chunkOf(0, 0, 0, 0, 1, 2),
			want:  &Frame{Width: 0, Height: 0, Pixels: []uint16{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFrame(tt.chunk, 0)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeFrame() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeFrame_Errors(t *testing.T) {
	tests := []struct {
		name    string
		chunk   []byte
		index   uint32
		wantErr error
	}{
		{"空のチャンク", nil, 0, codecerr.ErrIndex},
		{"フレーム数を超える", chunkOf(1, 0, 1, 0, 0), 1, codecerr.ErrIndex},
		{"オフセットがチャンク外", []byte{0x02, 0x00, 0x40, 0x00, 1, 0, 1, 0}, 1, codecerr.ErrData},
		{"オフセット表がチャンク外", []byte{0x03, 0x00, 0x03, 0x00}, 2, codecerr.ErrData},
		{"ヘッダが短い", chunkOf(1, 0, 1), 0, codecerr.ErrData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.chunk, tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeFrame_Idempotent(t *testing.T) {
	chunk := chunkOf(3, 0, 2, 0, 0x81, 2, 9, 8, 0x83)
	first, err := DecodeFrame(chunk, 0)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	second, err := DecodeFrame(chunk, 0)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("DecodeFrame() differs between calls: %+v vs %+v", first, second)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	frames := []*Frame{
		{Width: 3, Height: 2, Pixels: []uint16{1, T, 3, T, T, 0xFF}},
		{Width: 1, Height: 1, Pixels: []uint16{0}},
		{Width: 200, Height: 1, Pixels: func() []uint16 {
			px := make([]uint16, 200) // 0x7F を超える連続リテラル
			for i := range px {
				px[i] = uint16(i)
			}
			return px
		}()},
	}

	chunk, err := Encode(frames)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got := FrameCount(chunk); got != uint32(len(frames)) {
		t.Fatalf("FrameCount() = %d, want %d", got, len(frames))
	}

	got := DecodeFrames(chunk)
	if !reflect.DeepEqual(got, frames) {
		t.Errorf("DecodeFrames(Encode()) = %+v, want %+v", got, frames)
	}
}

func TestDecodeFrames_StopsAtBrokenFrame(t *testing.T) {
	// 2番目のオフセットがチャンク外を指す
	chunk := []byte{0x02, 0x00, 0x7F, 0x00, 1, 0, 1, 0, 1, 0x09}
	got := DecodeFrames(chunk)
	if len(got) != 1 {
		t.Fatalf("DecodeFrames() returned %d frames, want 1", len(got))
	}
	if got[0].Pixels[0] != 0x09 {
		t.Errorf("frame 0 pixel = %#x, want 0x09", got[0].Pixels[0])
	}
}

func TestDrawFrame(t *testing.T) {
	f := &Frame{Width: 2, Height: 2, Pixels: []uint16{1, T, 3, 4}}

	tests := []struct {
		name string
		x, y int
		want []byte
	}{
		{"左上", 0, 0, []byte{1, 0, 0, 3, 4, 0, 0, 0, 0}},
		{"右下で切り取り", 2, 2, []byte{0, 0, 0, 0, 0, 0, 0, 0, 1}},
		{"左上にはみ出す", -1, -1, []byte{4, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"完全に外側", 3, 0, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"負の方向に完全に外側", -2, -2, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 9)
			DrawFrame(f, dst, 3, 3, tt.x, tt.y)
			if !bytes.Equal(dst, tt.want) {
				t.Errorf("DrawFrame() dst = %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestDrawFrame_TransparentKeepsDestination(t *testing.T) {
	f := &Frame{Width: 3, Height: 1, Pixels: []uint16{T, 7, T}}
	dst := []byte{0xAA, 0xBB, 0xCC}
	DrawFrame(f, dst, 3, 1, 0, 0)
	if want := []byte{0xAA, 7, 0xCC}; !bytes.Equal(dst, want) {
		t.Errorf("DrawFrame() dst = %v, want %v", dst, want)
	}
}

func TestDrawFrame_OutsideLeavesBufferUnchanged(t *testing.T) {
	f := &Frame{Width: 4, Height: 4, Pixels: make([]uint16, 16)}
	dst := bytes.Repeat([]byte{0x5A}, 64)
	orig := bytes.Clone(dst)

	for _, pos := range [][2]int{{8, 0}, {0, 8}, {-4, 0}, {0, -4}, {100, 100}} {
		DrawFrame(f, dst, 8, 8, pos[0], pos[1])
	}
	DrawFrame(f, dst, 0, 0, 0, 0)
	if !bytes.Equal(dst, orig) {
		t.Error("DrawFrame() outside the destination modified the buffer")
	}
}

func TestFrame_Image(t *testing.T) {
	f := &Frame{Width: 2, Height: 1, Pixels: []uint16{1, T}}
	pal := color.Palette{color.Black, color.RGBA{0xFF, 0, 0, 0xFF}}

	img := f.Image(pal)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0xFF, 0, 0, 0xFF}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
	if got := img.NRGBAAt(1, 0); got.A != 0 {
		t.Errorf("transparent pixel alpha = %d, want 0", got.A)
	}
}

func TestFrame_At(t *testing.T) {
	f := &Frame{Width: 2, Height: 1, Pixels: []uint16{5, 6}}
	if got := f.At(1, 0); got != 6 {
		t.Errorf("At(1, 0) = %d, want 6", got)
	}
	if got := f.At(2, 0); got != Transparent {
		t.Errorf("At(2, 0) = %d, want Transparent", got)
	}
}
