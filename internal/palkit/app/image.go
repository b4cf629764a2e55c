package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	palerrors "github.com/shiroemons/go-mkf/internal/palkit/errors"
	"github.com/shiroemons/go-mkf/internal/palkit/fileutil"
	"github.com/shiroemons/go-mkf/pkg/rng"
	"github.com/shiroemons/go-mkf/pkg/sprite"
	"github.com/shiroemons/go-mkf/pkg/tilemap"
	"github.com/shiroemons/go-mkf/pkg/yj1"
)

// SpriteOptions はスプライト書き出しのオプション
type SpriteOptions struct {
	Palette PaletteOptions
	// Decompress はシグネチャに関係なくYJ_1として展開します
	Decompress bool
	Scale      int
}

// MapOptions はマップ書き出しのオプション
type MapOptions struct {
	Palette PaletteOptions
	Scale   int
}

// RNGOptions は動画フレーム書き出しのオプション
type RNGOptions struct {
	Palette PaletteOptions
	// Limit は書き出すフレーム数の上限。0なら全フレーム。
	Limit int
	Scale int
}

func (a *App) saveImage(path string, img image.Image, scale int) error {
	if a.config.DryRun {
		a.printf("%s\n", path)
		return nil
	}
	if err := a.images.SavePNG(path, img, scale); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveImage, path, err)
	}
	a.logger.Printf("書き出し: %s", path)
	return nil
}

// Sprite はスプライトチャンクの各フレームをPNGで書き出し、書き出した枚数を返します
func (a *App) Sprite(ctx context.Context, archive string, index uint32, opts SpriteOptions) (int, error) {
	src, err := a.library.Archive(archive)
	if err != nil {
		return 0, err
	}
	pal, err := a.palette(opts.Palette)
	if err != nil {
		return 0, err
	}

	size, err := src.ChunkSize(index)
	if err != nil {
		return 0, palerrors.NewChunkError(src.Name(), index, err)
	}
	if size == 0 {
		return 0, palerrors.NewChunkError(src.Name(), index, ErrEmptyChunk)
	}

	var chunk []byte
	if opts.Decompress {
		chunk, err = src.ReadChunkDecompressed(index)
	} else {
		chunk, err = src.ReadChunk(index)
		if err == nil && yj1.IsCompressed(chunk) {
			chunk, err = src.ReadChunkDecompressed(index)
		}
	}
	if err != nil {
		return 0, palerrors.NewChunkError(src.Name(), index, err)
	}

	frames := sprite.DecodeFrames(chunk)
	if len(frames) == 0 {
		return 0, palerrors.NewChunkError(src.Name(), index, ErrNoFrames)
	}
	if n := sprite.FrameCount(chunk); int(n) != len(frames) {
		a.logger.Printf("%s #%d: %d フレーム中 %d フレームを展開", src.Name(), index, n, len(frames))
	}

	colors := pal.Color()
	for i, f := range frames {
		if err := checkContext(ctx); err != nil {
			return i, err
		}
		path := filepath.Join(a.config.OutputDir, fileutil.FrameFilename(src.Name(), index, uint32(i)))
		if err := a.saveImage(path, f.Image(colors), opts.Scale); err != nil {
			return i, err
		}
	}
	return len(frames), nil
}

// Map はマップ全体を1枚のPNGとして書き出します
func (a *App) Map(ctx context.Context, index uint32, opts MapOptions) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	pal, err := a.palette(opts.Palette)
	if err != nil {
		return err
	}
	m, err := a.library.Map(index)
	if err != nil {
		return err
	}
	a.logger.Printf("MAP #%d: タイル %d 枚", index, len(m.Frames))

	img := m.Render(pal.Color(), tilemap.Bounds())
	path := filepath.Join(a.config.OutputDir, fileutil.ChunkFilename("MAP", index, ".png"))
	return a.saveImage(path, img, opts.Scale)
}

// RNG は動画チャンクを再生し、各フレームをPNGで書き出して枚数を返します
func (a *App) RNG(ctx context.Context, index uint32, opts RNGOptions) (int, error) {
	src, err := a.library.Archive("RNG")
	if err != nil {
		return 0, err
	}
	pal, err := a.palette(opts.Palette)
	if err != nil {
		return 0, err
	}

	player, err := rng.NewPlayer(src, index, rng.DefaultWidth, rng.DefaultHeight)
	if err != nil {
		return 0, palerrors.NewChunkError(src.Name(), index, err)
	}
	a.logger.Printf("RNG #%d: %d フレーム", index, player.FrameCount())

	colors := pal.Color()
	written := 0
	for opts.Limit <= 0 || written < opts.Limit {
		if err := checkContext(ctx); err != nil {
			return written, err
		}
		frame, err := player.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, palerrors.NewChunkError(src.Name(), index, err)
		}
		path := filepath.Join(a.config.OutputDir, fileutil.FrameFilename(src.Name(), index, frame))
		if err := a.saveImage(path, player.Image(colors), opts.Scale); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
