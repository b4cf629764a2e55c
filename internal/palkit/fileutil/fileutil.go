// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/disintegration/gift"

	"github.com/shiroemons/go-mkf/internal/palkit/interfaces"
)

// ChunkFilename はチャンクの出力ファイル名を生成します（例: PAT_0003.bin）
func ChunkFilename(archive string, index uint32, ext string) string {
	return fmt.Sprintf("%s_%04d%s", archive, index, ext)
}

// FrameFilename はフレーム画像の出力ファイル名を生成します（例: MGO_0012_003.png）
func FrameFilename(archive string, index, frame uint32) string {
	return fmt.Sprintf("%s_%04d_%03d.png", archive, index, frame)
}

// PNGWriter は画像をPNGで保存します
type PNGWriter struct {
	fs interfaces.FileSystem
}

// NewPNGWriter は新しいPNGWriterを作成します
func NewPNGWriter(fs interfaces.FileSystem) *PNGWriter {
	return &PNGWriter{fs: fs}
}

// SavePNG は img を scale 倍（最近傍補間）に拡大してPNGで保存します
func (w *PNGWriter) SavePNG(path string, img image.Image, scale int) error {
	if scale > 1 {
		img = Scale(img, scale)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeImage, err)
	}
	if err := w.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := w.fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFile, err)
	}
	return nil
}

// Scale は img を scale 倍に拡大します。ドット絵が滲まないよう最近傍補間を使います。
func Scale(img image.Image, scale int) image.Image {
	b := img.Bounds()
	g := gift.New(gift.Resize(b.Dx()*scale, b.Dy()*scale, gift.NearestNeighborResampling))
	dst := image.NewNRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst
}
