package text

import "errors"

// ErrUnknownEncoding は対応していない文字コード名が指定された場合のエラー
var ErrUnknownEncoding = errors.New("対応していない文字コードです")
