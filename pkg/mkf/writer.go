package mkf

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

// Write はチャンク列をMKF形式で書き出します
func Write(w io.Writer, chunks [][]byte) error {
	const op = "mkf.Write"

	offsets := make([]uint32, len(chunks)+1)
	pos := uint64(len(offsets)) * 4
	for i, chunk := range chunks {
		offsets[i] = uint32(pos)
		pos += uint64(len(chunk))
		if pos > math.MaxUint32 {
			return codecerr.Data(op, "archive exceeds 4GiB at chunk %d", i)
		}
	}
	offsets[len(chunks)] = uint32(pos)

	if err := binary.Write(w, binary.LittleEndian, offsets); err != nil {
		return codecerr.IO(op, err)
	}
	for _, chunk := range chunks {
		if _, err := w.Write(chunk); err != nil {
			return codecerr.IO(op, err)
		}
	}
	return nil
}

// PackSubChunks はサブチャンク列をオフセット表付きの1チャンクにまとめます。
// 各サブチャンクはそのまま格納されるため、必要なら事前にYJ_1で包んでください。
func PackSubChunks(subs [][]byte) []byte {
	table := 4 * (len(subs) + 1)
	size := table
	for _, s := range subs {
		size += len(s)
	}

	out := make([]byte, 0, size)
	pos := uint32(table)
	for _, s := range subs {
		out = binary.LittleEndian.AppendUint32(out, pos)
		pos += uint32(len(s))
	}
	out = binary.LittleEndian.AppendUint32(out, pos)
	for _, s := range subs {
		out = append(out, s...)
	}
	return out
}
