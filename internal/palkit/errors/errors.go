// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound はファイルが見つからない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrArchiveNotFound はデータディレクトリにアーカイブが見つからない場合のエラー
	ErrArchiveNotFound = errors.New("アーカイブが見つかりません")

	// ErrInvalidArchive はアーカイブが無効な場合のエラー
	ErrInvalidArchive = errors.New("無効なアーカイブファイルです")

	// ErrNoDataFound はデータが見つからない場合のエラー
	ErrNoDataFound = errors.New("必要なデータが見つかりません")
)

// ArchiveError はアーカイブ関連のエラー
type ArchiveError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ArchiveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// NewArchiveError は新しいArchiveErrorを作成します
func NewArchiveError(op, path string, err error) *ArchiveError {
	return &ArchiveError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// ChunkError はチャンクの処理に失敗した場合のエラー
type ChunkError struct {
	Archive string // アーカイブ名
	Index   uint32 // チャンク番号
	Err     error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ChunkError) Error() string {
	return fmt.Sprintf("%s #%d の処理エラー: %v", e.Archive, e.Index, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// NewChunkError は新しいChunkErrorを作成します
func NewChunkError(archive string, index uint32, err error) *ChunkError {
	return &ChunkError{
		Archive: archive,
		Index:   index,
		Err:     err,
	}
}
