package palette

import (
	"errors"
	"image/color"
	"testing"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

func TestFromRaw(t *testing.T) {
	raw := make([]byte, RawSize)
	raw[0], raw[1], raw[2] = 0x3F, 0x00, 0x20
	raw[RawSize-1] = 0x01

	p, err := FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}

	tests := []struct {
		name  string
		index int
		want  RGB
	}{
		{"最大値は0xFC", 0, RGB{0xFC, 0x00, 0x80}},
		{"0は0のまま", 1, RGB{0, 0, 0}},
		{"最後の色", 255, RGB{0, 0, 0x04}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p[tt.index] != tt.want {
				t.Errorf("Palette[%d] = %+v, want %+v", tt.index, p[tt.index], tt.want)
			}
		})
	}
}

func TestFromRaw_Short(t *testing.T) {
	if _, err := FromRaw(make([]byte, RawSize-1)); !errors.Is(err, codecerr.ErrData) {
		t.Errorf("FromRaw() error = %v, want ErrData", err)
	}
}

func TestFromRawNight(t *testing.T) {
	raw := make([]byte, 2*RawSize)
	raw[RawSize] = 0x10

	if !HasNight(raw) {
		t.Error("HasNight() = false, want true")
	}
	p, err := FromRawNight(raw)
	if err != nil {
		t.Fatalf("FromRawNight() error = %v", err)
	}
	if p[0].R != 0x40 {
		t.Errorf("night Palette[0].R = %#x, want 0x40", p[0].R)
	}

	if HasNight(raw[:RawSize]) {
		t.Error("HasNight() = true for a single palette")
	}
	if _, err := FromRawNight(raw[:RawSize]); !errors.Is(err, codecerr.ErrData) {
		t.Errorf("FromRawNight() error = %v, want ErrData", err)
	}
}

func TestPalette_Color(t *testing.T) {
	var p Palette
	p[3] = RGB{1, 2, 3}
	pal := p.Color()
	if len(pal) != Colors {
		t.Fatalf("len(Color()) = %d, want %d", len(pal), Colors)
	}
	if pal[3] != (color.RGBA{1, 2, 3, 0xFF}) {
		t.Errorf("Color()[3] = %v", pal[3])
	}
}
