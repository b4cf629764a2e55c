package yj1

import (
	"fmt"
	"io"
)

// maxCodeWidth は1回の読み込みで扱える最大ビット数です
const maxCodeWidth = 16

// BitReader はYJ_1のビットストリームを読み込みます。
// ストリームは16ビットのリトルエンディアンワード列で、各ワードの最上位ビットから順に消費されます。
type BitReader struct {
	data []byte
	pos  uint32 // 読み込み済みのビット数
}

// NewBitReader は新しい BitReader を作成します。
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// Read は指定されたビット数を読み込み、その値を返します。
// 0ビットの読み込みは位置を進めずに0を返します。
// ワードの途中でデータが尽きた場合は io.ErrUnexpectedEOF を返します。
func (br *BitReader) Read(numBits uint) (uint32, error) {
	if numBits > maxCodeWidth {
		return 0, fmt.Errorf("invalid number of bits to read: %d", numBits)
	}

	var value uint32
	for i := uint(0); i < numBits; i++ {
		idx := int(br.pos>>4) << 1
		if idx+1 >= len(br.data) {
			return value, io.ErrUnexpectedEOF
		}
		word := uint16(br.data[idx]) | uint16(br.data[idx+1])<<8
		bit := (word >> (15 - br.pos&15)) & 1
		value = value<<1 | uint32(bit)
		br.pos++
	}
	return value, nil
}

// Pos は読み込み済みのビット数を返します
func (br *BitReader) Pos() uint32 {
	return br.pos
}
