package mocks

import (
	"github.com/shiroemons/go-mkf/internal/palkit/interfaces"
	"github.com/shiroemons/go-mkf/pkg/codecerr"
	"github.com/shiroemons/go-mkf/pkg/yj1"
)

// MockArchive はテスト用のアーカイブモック
type MockArchive struct {
	// Chunks は生のチャンク。ReadChunkDecompressed はこれをYJ_1として展開します。
	Chunks [][]byte
	// SubChunks は展開済みのサブチャンク
	SubChunks map[uint32][][]byte
	Error     error
	Closed    bool
	Reads     int
}

// NewMockArchive は新しいMockArchiveを作成します
func NewMockArchive(chunks ...[]byte) *MockArchive {
	return &MockArchive{
		Chunks:    chunks,
		SubChunks: make(map[uint32][][]byte),
	}
}

// ChunkCount はチャンク数を返します
func (a *MockArchive) ChunkCount() uint32 {
	return uint32(len(a.Chunks))
}

// ChunkSize はチャンクのサイズを返します
func (a *MockArchive) ChunkSize(index uint32) (uint32, error) {
	if a.Error != nil {
		return 0, a.Error
	}
	if index >= a.ChunkCount() {
		return 0, codecerr.Index("mock.ChunkSize", index, a.ChunkCount())
	}
	return uint32(len(a.Chunks[index])), nil
}

// ReadChunk はチャンクを返します
func (a *MockArchive) ReadChunk(index uint32) ([]byte, error) {
	a.Reads++
	if a.Error != nil {
		return nil, a.Error
	}
	if index >= a.ChunkCount() {
		return nil, codecerr.Index("mock.ReadChunk", index, a.ChunkCount())
	}
	if len(a.Chunks[index]) == 0 {
		return nil, codecerr.Data("mock.ReadChunk", "chunk %d is empty", index)
	}
	return a.Chunks[index], nil
}

// ReadChunkDecompressed はチャンクをYJ_1として展開して返します
func (a *MockArchive) ReadChunkDecompressed(index uint32) ([]byte, error) {
	data, err := a.ReadChunk(index)
	if err != nil {
		return nil, err
	}
	return yj1.Decompress(data)
}

// SubCount はサブチャンク数を返します
func (a *MockArchive) SubCount(index uint32) (uint32, error) {
	if a.Error != nil {
		return 0, a.Error
	}
	subs, ok := a.SubChunks[index]
	if !ok {
		return 0, codecerr.Data("mock.SubCount", "chunk %d has no sub-chunks", index)
	}
	return uint32(len(subs)), nil
}

// ReadSubChunk はサブチャンクを返します
func (a *MockArchive) ReadSubChunk(index, sub uint32) ([]byte, error) {
	n, err := a.SubCount(index)
	if err != nil {
		return nil, err
	}
	if sub >= n {
		return nil, codecerr.Index("mock.ReadSubChunk", sub, n)
	}
	return a.SubChunks[index][sub], nil
}

// Close はアーカイブを閉じます
func (a *MockArchive) Close() error {
	a.Closed = true
	return nil
}

// MockArchiveOpener はパスごとにモックアーカイブを返します
type MockArchiveOpener struct {
	Archives map[string]*MockArchive
	Opened   []string
	Error    error
}

// NewMockArchiveOpener は新しいMockArchiveOpenerを作成します
func NewMockArchiveOpener() *MockArchiveOpener {
	return &MockArchiveOpener{Archives: make(map[string]*MockArchive)}
}

// Open はアーカイブを開きます
func (o *MockArchiveOpener) Open(path string) (interfaces.Archive, error) {
	o.Opened = append(o.Opened, path)
	if o.Error != nil {
		return nil, o.Error
	}
	a, ok := o.Archives[path]
	if !ok {
		return nil, codecerr.IO("mock.Open", errNotFound)
	}
	return a, nil
}
