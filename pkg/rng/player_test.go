package rng

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"testing"
)

// fakeAnimation はメモリ上のサブチャンク列です
type fakeAnimation struct {
	frames [][]byte
	err    error
}

func (f *fakeAnimation) SubCount(index uint32) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	return uint32(len(f.frames)), nil
}

func (f *fakeAnimation) ReadSubChunk(index, sub uint32) ([]byte, error) {
	return f.frames[sub], nil
}

func TestPlayer(t *testing.T) {
	anim := &fakeAnimation{frames: [][]byte{
		{0x0D, 1, 1},       // 先頭2単位を1で塗る
		{},                 // 変化なし
		{0x02, 0x06, 2, 2}, // 2単位目だけ2にする
	}}

	p, err := NewPlayer(anim, 7, 4, 1)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	if p.FrameCount() != 3 {
		t.Errorf("FrameCount() = %d, want 3", p.FrameCount())
	}

	wants := [][]byte{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 2, 2},
	}
	for i, want := range wants {
		got, err := p.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if got != uint32(i) {
			t.Errorf("Next() = %d, want %d", got, i)
		}
		if !bytes.Equal(p.Frame(), want) {
			t.Errorf("frame %d = %v, want %v", i, p.Frame(), want)
		}
	}

	if _, err := p.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after last frame error = %v, want io.EOF", err)
	}

	img := p.Image(color.Palette{color.Black, color.White, color.Gray{0x80}})
	if img.Bounds().Dx() != 4 || img.ColorIndexAt(3, 0) != 2 {
		t.Errorf("Image() = %v", img.Pix)
	}

	p.Reset()
	if !bytes.Equal(p.Frame(), []byte{0, 0, 0, 0}) {
		t.Errorf("Reset() frame = %v", p.Frame())
	}
	if _, err := p.Next(); err != nil {
		t.Errorf("Next() after Reset error = %v", err)
	}
}

func TestNewPlayer_Error(t *testing.T) {
	want := errors.New("broken archive")
	if _, err := NewPlayer(&fakeAnimation{err: want}, 0, 320, 200); !errors.Is(err, want) {
		t.Errorf("NewPlayer() error = %v, want %v", err, want)
	}
}
