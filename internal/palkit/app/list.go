package app

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/shiroemons/go-mkf/internal/palkit/assets"
	palerrors "github.com/shiroemons/go-mkf/internal/palkit/errors"
	"github.com/shiroemons/go-mkf/pkg/yj1"
)

// ListArchives はデータディレクトリのアーカイブを一覧表示します
func (a *App) ListArchives(ctx context.Context) error {
	names, err := a.library.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: %s", ErrNoArchives, a.library.Dir())
	}

	for _, name := range names {
		if err := checkContext(ctx); err != nil {
			return err
		}
		src, err := a.library.Archive(name)
		if err != nil {
			a.printf("%-6s %8s  %s\n", name, "-", err)
			continue
		}
		a.printf("%-6s %8s  %s\n", name, humanize.Comma(int64(src.ChunkCount())), assets.Description(name))
	}
	return nil
}

// ChunkInfo はチャンクの概要です
type ChunkInfo struct {
	Index        uint32
	Size         uint32
	Compressed   bool
	Uncompressed uint32
}

// Chunks はアーカイブの全チャンクの概要を返します
func (a *App) Chunks(ctx context.Context, archive string) ([]ChunkInfo, error) {
	src, err := a.library.Archive(archive)
	if err != nil {
		return nil, err
	}

	infos := make([]ChunkInfo, 0, src.ChunkCount())
	for i := range src.ChunkCount() {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		size, err := src.ChunkSize(i)
		if err != nil {
			return nil, palerrors.NewChunkError(src.Name(), i, err)
		}
		info := ChunkInfo{Index: i, Size: size}
		if size >= yj1.HeaderSize {
			data, err := src.ReadChunk(i)
			if err != nil {
				return nil, palerrors.NewChunkError(src.Name(), i, err)
			}
			if h, err := yj1.ParseHeader(data); err == nil {
				info.Compressed = true
				info.Uncompressed = h.UncompressedLength
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ListChunks はアーカイブのチャンクを一覧表示します
func (a *App) ListChunks(ctx context.Context, archive string) error {
	infos, err := a.Chunks(ctx, archive)
	if err != nil {
		return err
	}

	var total uint64
	for _, info := range infos {
		total += uint64(info.Size)
		switch {
		case info.Size == 0:
			a.printf("%5d  %10s\n", info.Index, "(空)")
		case info.Compressed:
			a.printf("%5d  %10s  YJ_1 -> %s\n", info.Index, humanize.IBytes(uint64(info.Size)), humanize.IBytes(uint64(info.Uncompressed)))
		default:
			a.printf("%5d  %10s\n", info.Index, humanize.IBytes(uint64(info.Size)))
		}
	}
	a.printf("%s チャンク, 合計 %s\n", humanize.Comma(int64(len(infos))), humanize.IBytes(total))
	return nil
}
