package config

import "errors"

var (
	// ErrLoadConfig は設定ファイルの読み込みに失敗した場合のエラー
	ErrLoadConfig = errors.New("設定ファイルの読み込みに失敗しました")

	// ErrFindDataDir はデータディレクトリの検出に失敗した場合のエラー
	ErrFindDataDir = errors.New("データディレクトリの検出に失敗しました")
)
