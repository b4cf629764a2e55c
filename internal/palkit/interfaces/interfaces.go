// Package interfaces はpalkitコマンドで使用するインターフェースを定義します
package interfaces

import "image"

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
	Getwd() (string, error)
	Executable() (string, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
	Size() int64
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// Archive はMKFアーカイブの読み込みインターフェースです。*mkf.Archive が満たします。
type Archive interface {
	ChunkCount() uint32
	ChunkSize(index uint32) (uint32, error)
	ReadChunk(index uint32) ([]byte, error)
	ReadChunkDecompressed(index uint32) ([]byte, error)
	SubCount(index uint32) (uint32, error)
	ReadSubChunk(index, sub uint32) ([]byte, error)
	Close() error
}

// ArchiveOpener はアーカイブを開くためのインターフェース
type ArchiveOpener interface {
	Open(path string) (Archive, error)
}

// ArchiveFinder はデータディレクトリからアーカイブを検索するインターフェースです。
// 戻り値は大文字のアーカイブ名（拡張子なし）からパスへの対応です。
type ArchiveFinder interface {
	Find(dir string) (map[string]string, error)
}

// ImageWriter は画像を保存するインターフェース
type ImageWriter interface {
	SavePNG(path string, img image.Image, scale int) error
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
