package assets

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shiroemons/go-mkf/internal/palkit/interfaces"
)

type chunkKey struct {
	archive string
	index   uint32
}

// Source は展開済みチャンクをキャッシュするアーカイブのラッパーです。
// 返されるスライスはキャッシュと共有されるため変更してはいけません。
type Source struct {
	interfaces.Archive
	name  string
	cache *lru.Cache[chunkKey, []byte]
}

// Name はアーカイブ名を返します
func (s *Source) Name() string {
	return s.name
}

// ReadChunkDecompressed は展開済みチャンクを返します。キャッシュにあれば再展開しません。
func (s *Source) ReadChunkDecompressed(index uint32) ([]byte, error) {
	if s.cache == nil {
		return s.Archive.ReadChunkDecompressed(index)
	}

	key := chunkKey{archive: s.name, index: index}
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}
	data, err := s.Archive.ReadChunkDecompressed(index)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, data)
	return data, nil
}

// ReadChunkOrEmpty は空のチャンクを空スライスとして返します
func (s *Source) ReadChunkOrEmpty(index uint32) ([]byte, error) {
	size, err := s.ChunkSize(index)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}
	return s.ReadChunk(index)
}
