package assets

import "errors"

var (
	// ErrLibraryClosed は閉じたライブラリを使用した場合のエラー
	ErrLibraryClosed = errors.New("ライブラリは既に閉じられています")

	// ErrCreateCache はチャンクキャッシュの作成に失敗した場合のエラー
	ErrCreateCache = errors.New("チャンクキャッシュの作成に失敗しました")
)
