// Package mkf はMKFアーカイブ（オフセット表で区切られたチャンクの連結）を読み込むためのパッケージです。
//
// ファイル先頭はリトルエンディアンの uint32 のオフセット表で、最初の値が表自体のサイズになります。
// チャンク i はオフセット表の i 番目と i+1 番目の値で挟まれた範囲です。
//
// 基本的な使い方:
//
//	archive, err := mkf.Open("PAT.MKF")
//	if err != nil {
//	    return err
//	}
//	defer archive.Close()
//	for i := uint32(0); i < archive.ChunkCount(); i++ {
//	    data, err := archive.ReadChunk(i)
//	    // チャンクを処理...
//	}
package mkf

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
	"github.com/shiroemons/go-mkf/pkg/yj1"
)

// Archive はMKFアーカイブを表します。
// キャッシュもロックも持たず、呼び出しごとに読み込みます。
type Archive struct {
	r          io.ReaderAt
	closer     io.Closer
	name       string
	size       int64 // 不明な場合は -1
	chunkCount uint32
}

// sizer はサイズを報告できる読み込み元（bytes.Reader, io.SectionReader など）
type sizer interface {
	Size() int64
}

// Open はMKFファイルを開きます
func Open(filename string) (*Archive, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, codecerr.IO("mkf.Open", err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, codecerr.IO("mkf.Open", err)
	}

	a, err := newArchive(file, fileInfo.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	a.closer = file
	a.name = filename
	return a, nil
}

// NewArchive はメモリ上のデータなど任意の io.ReaderAt からアーカイブを作成します
func NewArchive(r io.ReaderAt) (*Archive, error) {
	size := int64(-1)
	if s, ok := r.(sizer); ok {
		size = s.Size()
	}
	return newArchive(r, size)
}

func newArchive(r io.ReaderAt, size int64) (*Archive, error) {
	const op = "mkf.NewArchive"

	a := &Archive{r: r, size: size}
	var first [4]byte
	if err := a.readAt(first[:], 0); err != nil {
		return nil, codecerr.IO(op, err)
	}
	tableSize := binary.LittleEndian.Uint32(first[:])
	if tableSize < 4 || tableSize%4 != 0 {
		return nil, codecerr.Format(op, "invalid offset table size %d", tableSize)
	}
	if size >= 0 && int64(tableSize) > size {
		return nil, codecerr.Format(op, "offset table size %d exceeds file size %d", tableSize, size)
	}
	a.chunkCount = (tableSize - 4) / 4
	return a, nil
}

// Close はアーカイブファイルを閉じます。NewArchive で作成した場合は何もしません。
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	if err != nil {
		return codecerr.IO("mkf.Close", err)
	}
	return nil
}

// Name は開いたファイルのパスを返します
func (a *Archive) Name() string {
	return a.name
}

// ChunkCount はチャンク数を返します
func (a *Archive) ChunkCount() uint32 {
	return a.chunkCount
}

// ChunkSize はチャンクを読まずにサイズを返します。空のチャンクは0です。
func (a *Archive) ChunkSize(index uint32) (uint32, error) {
	offset, next, err := a.chunkRange("mkf.ChunkSize", index)
	if err != nil {
		return 0, err
	}
	if next <= offset {
		return 0, nil
	}
	return next - offset, nil
}

// ReadChunk はチャンクの生データを読み込みます
func (a *Archive) ReadChunk(index uint32) ([]byte, error) {
	const op = "mkf.ReadChunk"

	offset, next, err := a.chunkRange(op, index)
	if err != nil {
		return nil, err
	}
	if next <= offset {
		return nil, codecerr.Data(op, "chunk %d is empty (offsets %d..%d)", index, offset, next)
	}

	buf := make([]byte, next-offset)
	if err := a.readAt(buf, int64(offset)); err != nil {
		return nil, codecerr.IO(op, err)
	}
	return buf, nil
}

// ReadChunkDecompressed はチャンクを読み込み、YJ_1として展開します
func (a *Archive) ReadChunkDecompressed(index uint32) ([]byte, error) {
	data, err := a.ReadChunk(index)
	if err != nil {
		return nil, err
	}
	return yj1.Decompress(data)
}

// SubCount はチャンク内のサブチャンク数を返します
func (a *Archive) SubCount(index uint32) (uint32, error) {
	_, _, count, err := a.subTable("mkf.SubCount", index)
	return count, err
}

// ReadSubChunkRaw はサブチャンクを展開せずに読み込みます。
// サイズ0のサブチャンクは空のスライスを返します。
func (a *Archive) ReadSubChunkRaw(index, sub uint32) ([]byte, error) {
	const op = "mkf.ReadSubChunk"

	offset, size, count, err := a.subTable(op, index)
	if err != nil {
		return nil, err
	}
	if sub >= count {
		return nil, codecerr.Index(op, sub, count)
	}

	// サブチャンクのオフセットはチャンク先頭からの相対値
	entry := 4 * sub
	if entry+8 > size {
		return nil, codecerr.Data(op, "sub-chunk table entry %d runs past chunk %d", sub, index)
	}
	var pair [8]byte
	if err := a.readAt(pair[:], int64(offset)+int64(entry)); err != nil {
		return nil, codecerr.IO(op, err)
	}
	start := binary.LittleEndian.Uint32(pair[0:])
	end := binary.LittleEndian.Uint32(pair[4:])

	switch {
	case end < start:
		return nil, codecerr.Data(op, "sub-chunk %d of chunk %d has negative size (%d..%d)", sub, index, start, end)
	case end == start:
		return []byte{}, nil
	case end > size:
		return nil, codecerr.Data(op, "sub-chunk %d of chunk %d ends at %d past chunk size %d", sub, index, end, size)
	}

	buf := make([]byte, end-start)
	if err := a.readAt(buf, int64(offset)+int64(start)); err != nil {
		return nil, codecerr.IO(op, err)
	}
	return buf, nil
}

// ReadSubChunk はサブチャンクを読み込み、YJ_1として展開します。
// サイズ0のサブチャンクは空のスライスを返します。
func (a *Archive) ReadSubChunk(index, sub uint32) ([]byte, error) {
	raw, err := a.ReadSubChunkRaw(index, sub)
	if err != nil || len(raw) == 0 {
		return raw, err
	}
	return yj1.Decompress(raw)
}

// chunkRange はオフセット表からチャンクの開始位置と終了位置を読み込みます
func (a *Archive) chunkRange(op string, index uint32) (uint32, uint32, error) {
	if index >= a.chunkCount {
		return 0, 0, codecerr.Index(op, index, a.chunkCount)
	}
	var pair [8]byte
	if err := a.readAt(pair[:], int64(index)*4); err != nil {
		return 0, 0, codecerr.IO(op, err)
	}
	return binary.LittleEndian.Uint32(pair[0:]), binary.LittleEndian.Uint32(pair[4:]), nil
}

// subTable はチャンクの位置、サイズ、サブチャンク数を返します
func (a *Archive) subTable(op string, index uint32) (offset, size, count uint32, err error) {
	offset, next, err := a.chunkRange(op, index)
	if err != nil {
		return 0, 0, 0, err
	}
	if next <= offset {
		return 0, 0, 0, codecerr.Data(op, "chunk %d is empty", index)
	}
	size = next - offset
	if size < 4 {
		return 0, 0, 0, codecerr.Data(op, "chunk %d too small for a sub-chunk table (%d bytes)", index, size)
	}

	var first [4]byte
	if err := a.readAt(first[:], int64(offset)); err != nil {
		return 0, 0, 0, codecerr.IO(op, err)
	}
	t := binary.LittleEndian.Uint32(first[:])
	if t < 4 {
		return 0, 0, 0, codecerr.Data(op, "chunk %d has invalid sub-chunk table size %d", index, t)
	}
	return offset, size, (t - 4) / 4, nil
}

// readAt は buf を埋めるまで読み込みます。範囲がファイル末尾を越える場合は io.ErrUnexpectedEOF です。
func (a *Archive) readAt(buf []byte, off int64) error {
	if a.size >= 0 && off+int64(len(buf)) > a.size {
		return io.ErrUnexpectedEOF
	}
	n, err := a.r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
