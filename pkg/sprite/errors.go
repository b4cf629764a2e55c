package sprite

import "errors"

var (
	errFrameHeader   = errors.New("フレームヘッダが不完全です")
	errFrameTooLarge = errors.New("フレームが大きすぎます")
)
