package app

import (
	"context"

	"github.com/dustin/go-humanize"

	palerrors "github.com/shiroemons/go-mkf/internal/palkit/errors"
	"github.com/shiroemons/go-mkf/pkg/sprite"
	"github.com/shiroemons/go-mkf/pkg/yj1"
)

// Info はチャンクのヘッダ情報を表示します。
// 解釈できない項目は表示しません。
func (a *App) Info(ctx context.Context, archive string, index uint32) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	src, err := a.library.Archive(archive)
	if err != nil {
		return err
	}

	size, err := src.ChunkSize(index)
	if err != nil {
		return palerrors.NewChunkError(src.Name(), index, err)
	}
	a.printf("アーカイブ:   %s (%d チャンク)\n", src.Name(), src.ChunkCount())
	a.printf("チャンク:     #%d\n", index)
	a.printf("サイズ:       %s (%s バイト)\n", humanize.IBytes(uint64(size)), humanize.Comma(int64(size)))
	if size == 0 {
		return nil
	}

	data, err := src.ReadChunk(index)
	if err != nil {
		return palerrors.NewChunkError(src.Name(), index, err)
	}

	if h, err := yj1.ParseHeader(data); err == nil {
		a.printf("YJ_1:         展開後 %s, ブロック %d, ハフマン木 %d\n",
			humanize.IBytes(uint64(h.UncompressedLength)), h.BlockCount, h.TreeLength)
		raw, err := src.ReadChunkDecompressed(index)
		if err != nil {
			a.printf("展開:         失敗 (%v)\n", err)
			return nil
		}
		data = raw
	}

	if n, err := src.SubCount(index); err == nil {
		a.printf("サブチャンク: %d\n", n)
	}
	if n := sprite.FrameCount(data); n > 0 {
		frames := sprite.DecodeFrames(data)
		a.printf("スプライト:   %d フレーム中 %d フレーム展開可能\n", n, len(frames))
		if len(frames) > 0 {
			a.printf("先頭フレーム: %dx%d\n", frames[0].Width, frames[0].Height)
		}
	}
	return nil
}
