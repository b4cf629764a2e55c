package rng

import "errors"

var (
	errSourceOverrun      = errors.New("差分データが途中で終わっています")
	errDestinationOverrun = errors.New("出力バッファを超えて書き込もうとしました")
)
