// Package app はpalkitの各コマンドの処理を実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shiroemons/go-mkf/internal/palkit/assets"
	"github.com/shiroemons/go-mkf/internal/palkit/config"
	"github.com/shiroemons/go-mkf/internal/palkit/fileutil"
	"github.com/shiroemons/go-mkf/internal/palkit/interfaces"
	"github.com/shiroemons/go-mkf/pkg/palette"
	"github.com/shiroemons/go-mkf/pkg/text"
)

// App はデータディレクトリに対する操作をまとめます
type App struct {
	config  *config.Config
	logger  *config.DebugLogger
	fs      interfaces.FileSystem
	images  interfaces.ImageWriter
	library *assets.Library
	out     io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem  interfaces.FileSystem
	Finder      interfaces.ArchiveFinder
	Opener      interfaces.ArchiveOpener
	ImageWriter interfaces.ImageWriter
	Logger      *config.DebugLogger
	Stdout      io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) (*App, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewDebugLogger(cfg.DebugMode)
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	images := opts.ImageWriter
	if images == nil {
		images = fileutil.NewPNGWriter(fs)
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	library, err := assets.New(cfg.DataDir, assets.Options{
		FileSystem: fs,
		Finder:     opts.Finder,
		Opener:     opts.Opener,
		Logger:     logger,
		CacheSize:  cfg.CacheSize,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		fs:      fs,
		images:  images,
		library: library,
		out:     out,
	}, nil
}

// Library はアセットライブラリを返します
func (a *App) Library() *assets.Library {
	return a.library
}

// Close は開いたアーカイブを閉じます
func (a *App) Close() error {
	return a.library.Close()
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) decoder() (*text.Decoder, error) {
	return text.NewDecoder(a.config.Encoding)
}

// PaletteOptions はパレットの選択
type PaletteOptions struct {
	Index uint32
	Night bool
}

func (a *App) palette(opts PaletteOptions) (palette.Palette, error) {
	pal, err := a.library.Palette(opts.Index, opts.Night)
	if err != nil {
		return pal, err
	}
	a.logger.Printf("パレット PAT #%d（夜: %v）を使用", opts.Index, opts.Night)
	return pal, nil
}
