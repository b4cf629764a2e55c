package mocks

import (
	"errors"
	"image"
)

var errNotFound = errors.New("file not found")

// MockArchiveFinder はテスト用のArchiveFinderモック
type MockArchiveFinder struct {
	Archives map[string]string
	Error    error
}

// Find は設定されたアーカイブを返します
func (f *MockArchiveFinder) Find(dir string) (map[string]string, error) {
	if f.Error != nil {
		return nil, f.Error
	}
	return f.Archives, nil
}

// MockImageWriter は保存された画像を記録します
type MockImageWriter struct {
	Images map[string]image.Image
	Scales map[string]int
	Error  error
}

// NewMockImageWriter は新しいMockImageWriterを作成します
func NewMockImageWriter() *MockImageWriter {
	return &MockImageWriter{
		Images: make(map[string]image.Image),
		Scales: make(map[string]int),
	}
}

// SavePNG は画像を記録します
func (w *MockImageWriter) SavePNG(path string, img image.Image, scale int) error {
	if w.Error != nil {
		return w.Error
	}
	w.Images[path] = img
	w.Scales[path] = scale
	return nil
}
