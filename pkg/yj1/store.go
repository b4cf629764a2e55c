package yj1

import (
	"encoding/binary"
	"math"
)

// Store はデータを非圧縮のサブブロックだけで構成したYJ_1データに変換します。
// 各サブブロックは最大 0xFFFF バイトです。
func Store(data []byte) []byte {
	blocks := (len(data) + math.MaxUint16 - 1) / math.MaxUint16
	total := HeaderSize + blocks*blockPrefixSize + len(data)

	out := make([]byte, HeaderSize, total)
	copy(out, Signature)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[8:], uint32(total))
	binary.LittleEndian.PutUint16(out[12:], uint16(blocks))

	for len(data) > 0 {
		n := min(len(data), math.MaxUint16)
		out = binary.LittleEndian.AppendUint16(out, uint16(n))
		out = binary.LittleEndian.AppendUint16(out, 0)
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return out
}
