package fileutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/shiroemons/go-mkf/internal/palkit/mocks"
)

func TestChunkFilename(t *testing.T) {
	tests := []struct {
		archive string
		index   uint32
		ext     string
		want    string
	}{
		{"PAT", 3, ".bin", "PAT_0003.bin"},
		{"MAP", 1234, ".bin", "MAP_1234.bin"},
		{"FBP", 0, ".png", "FBP_0000.png"},
	}
	for _, tt := range tests {
		if got := ChunkFilename(tt.archive, tt.index, tt.ext); got != tt.want {
			t.Errorf("ChunkFilename(%s, %d, %s) = %s; want %s", tt.archive, tt.index, tt.ext, got, tt.want)
		}
	}
}

func TestFrameFilename(t *testing.T) {
	if got := FrameFilename("MGO", 12, 3); got != "MGO_0012_003.png" {
		t.Errorf("FrameFilename() = %s; want MGO_0012_003.png", got)
	}
}

func TestMKFFinder_Find(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		fsErr   error
		want    map[string]string
		wantErr error
	}{
		{
			name:  "大文字小文字混在",
			files: []string{"/data/pat.mkf", "/data/MAP.MKF", "/data/Fbp.Mkf", "/data/word.dat"},
			want: map[string]string{
				"PAT": "/data/pat.mkf",
				"MAP": "/data/MAP.MKF",
				"FBP": "/data/Fbp.Mkf",
			},
		},
		{
			name:  "MKFなし",
			files: []string{"/data/readme.txt"},
			want:  map[string]string{},
		},
		{
			name:    "読み込みエラー",
			fsErr:   errors.New("permission denied"),
			wantErr: ErrReadDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			for _, f := range tt.files {
				fs.Files[f] = []byte{}
			}
			fs.Error = tt.fsErr

			got, err := NewMKFFinder(fs).Find("/data")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Find() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Find() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Find()[%s] = %s, want %s", k, got[k], v)
				}
			}
		})
	}
}

func TestMKFFinder_FindDataDir(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"カレントディレクトリ", []string{"/test/dir/sss.mkf"}, "/test/dir"},
		{"実行ファイルのディレクトリ", []string{"/test/exec/SSS.MKF"}, "/test/exec"},
		{"見つからない", []string{"/elsewhere/sss.mkf"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			for _, f := range tt.files {
				fs.Files[f] = []byte{}
			}
			got, err := NewMKFFinder(fs).FindDataDir()
			if err != nil {
				t.Fatalf("FindDataDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindDataDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFile(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/data/WORD.DAT"] = []byte("x")

	got, err := FindFile(fs, "/data", "word.dat")
	if err != nil {
		t.Fatalf("FindFile() error = %v", err)
	}
	if got != "/data/WORD.DAT" {
		t.Errorf("FindFile() = %s, want /data/WORD.DAT", got)
	}

	if _, err := FindFile(fs, "/data", "m.msg"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("FindFile() error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{B: 255, A: 255})

	dst := Scale(src, 3)
	if b := dst.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("Scale() bounds = %v, want 6x3", b)
	}
	// 最近傍補間なので色は混ざらない
	if r, _, b, _ := dst.At(2, 2).RGBA(); r>>8 != 255 || b != 0 {
		t.Errorf("At(2,2) = %v, want red", dst.At(2, 2))
	}
	if r, _, b, _ := dst.At(3, 0).RGBA(); r != 0 || b>>8 != 255 {
		t.Errorf("At(3,0) = %v, want blue", dst.At(3, 0))
	}
}

func TestPNGWriter_SavePNG(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	w := NewPNGWriter(fs)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	path := filepath.Join("/out", "PAT_0000.png")
	if err := w.SavePNG(path, img, 2); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	if !fs.Dirs["/out"] {
		t.Error("SavePNG() did not create output directory")
	}

	decoded, err := png.Decode(bytes.NewReader(fs.Files[path]))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("saved bounds = %v, want 8x4", b)
	}

	fs.Error = errors.New("disk full")
	if err := w.SavePNG(path, img, 1); !errors.Is(err, ErrCreateDirectory) {
		t.Errorf("SavePNG() error = %v, want %v", err, ErrCreateDirectory)
	}
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	path := filepath.Join(dir, "sub", "a.bin")

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := fs.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !fs.FileExists(path) {
		t.Error("FileExists() = false, want true")
	}
	info, err := fs.Stat(path)
	if err != nil || info.Size() != 3 {
		t.Errorf("Stat() = %v, %v; want size 3", info, err)
	}
	entries, err := fs.ReadDir(filepath.Dir(path))
	if err != nil || len(entries) != 1 || entries[0].Name() != "a.bin" {
		t.Errorf("ReadDir() = %v, %v", entries, err)
	}
	if _, err := fs.ReadFile(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("ReadFile() error = %v, want not exist", err)
	}
}
