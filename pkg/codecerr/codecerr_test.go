package codecerr

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		not  []error
	}{
		{"I/Oエラー", IO("read", io.ErrUnexpectedEOF), ErrIO, []error{ErrFormat, ErrIndex, ErrData}},
		{"フォーマットエラー", Format("decompress", "bad signature %q", "ABCD"), ErrFormat, []error{ErrIO, ErrIndex, ErrData}},
		{"インデックスエラー", Index("chunk", 5, 3), ErrIndex, []error{ErrIO, ErrFormat, ErrData}},
		{"データエラー", Data("chunk", "empty"), ErrData, []error{ErrIO, ErrFormat, ErrIndex}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			for _, other := range tt.not {
				if errors.Is(tt.err, other) {
					t.Errorf("errors.Is(%v, %v) = true, want false", tt.err, other)
				}
			}
		})
	}
}

func TestError_UnwrapOriginal(t *testing.T) {
	err := IO("read", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("元のエラーがUnwrapで取り出せません")
	}

	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatal("errors.As で *Error に変換できません")
	}
	if ce.Op != "read" {
		t.Errorf("Op = %q, want %q", ce.Op, "read")
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Op: "chunk", Kind: ErrData}
	if got := err.Error(); got != "chunk: "+ErrData.Error() {
		t.Errorf("Error() = %q", got)
	}

	err = &Error{Op: "chunk", Kind: ErrIndex, Err: errors.New("index 9")}
	if !strings.Contains(err.Error(), "index 9") {
		t.Errorf("Error() = %q, want to contain %q", err.Error(), "index 9")
	}
}
