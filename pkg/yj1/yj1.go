// Package yj1 は "YJ_1" 形式で圧縮されたブロックを展開します。
//
// YJ_1はハフマン符号化されたリテラルとLZSSの後方参照を組み合わせた形式で、
// 16バイトのヘッダ、ハフマン木、複数のサブブロックで構成されます。
//
//	raw, err := yj1.Decompress(chunk)
//	if err != nil {
//	    return err
//	}
package yj1

import (
	"bytes"
	"encoding/binary"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

const (
	// Signature はYJ_1ブロックの先頭4バイト
	Signature = "YJ_1"

	// HeaderSize はファイルヘッダのサイズ
	HeaderSize = 16

	blockPrefixSize = 4  // 非圧縮長 + 圧縮長
	blockHeaderSize = 24 // 圧縮ブロックのヘッダ全体
)

// Header はYJ_1のファイルヘッダです
type Header struct {
	Signature          [4]byte
	UncompressedLength uint32
	CompressedLength   uint32
	BlockCount         uint16
	Reserved           uint8
	TreeLength         uint8 // ノードの組数
}

// blockHeader はサブブロックのヘッダです。
// CompressedLength が0の場合は先頭4バイトのみ有効です。
type blockHeader struct {
	UncompressedLength uint16
	CompressedLength   uint16
	RepeatTable        [4]uint16
	OffsetCodeLength   [4]uint8
	RepeatCodeLength   [3]uint8
	LoopCodeLength     [3]uint8
	LoopTable          [2]uint8
}

// ParseHeader はYJ_1のヘッダを解析します
func ParseHeader(data []byte) (Header, error) {
	const op = "yj1.ParseHeader"

	var h Header
	if len(data) < HeaderSize {
		return h, codecerr.Format(op, "header too short: %d bytes", len(data))
	}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return h, codecerr.Format(op, "read header: %v", err)
	}
	if string(h.Signature[:]) != Signature {
		return h, codecerr.Format(op, "invalid signature %q", h.Signature[:])
	}
	return h, nil
}

// IsCompressed はデータがYJ_1のシグネチャで始まるか判定します
func IsCompressed(data []byte) bool {
	return len(data) >= len(Signature) && string(data[:len(Signature)]) == Signature
}

// Decompress はYJ_1形式のデータを展開します。
// 出力はヘッダに記録された非圧縮長と一致するか、エラーになります。
func Decompress(data []byte) ([]byte, error) {
	const op = "yj1.Decompress"

	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.CompressedLength < HeaderSize || int64(h.CompressedLength) > int64(len(data)) {
		return nil, codecerr.Data(op, "compressed length %d out of range (input %d bytes)", h.CompressedLength, len(data))
	}
	if int(h.BlockCount)*blockPrefixSize > len(data)-HeaderSize {
		return nil, codecerr.Data(op, "%d blocks cannot fit in %d bytes", h.BlockCount, len(data))
	}
	if uint64(h.UncompressedLength) > uint64(h.BlockCount)*0xFFFF {
		return nil, codecerr.Data(op, "uncompressed length %d exceeds %d blocks", h.UncompressedLength, h.BlockCount)
	}

	root, offset, err := buildTree(data, h)
	if err != nil {
		return nil, err
	}

	d := &decoder{
		src:  data,
		dst:  make([]byte, h.UncompressedLength),
		tree: root,
	}

	for i := 0; i < int(h.BlockCount); i++ {
		next, err := d.block(offset)
		if err != nil {
			return nil, codecerr.Data(op, "block %d at offset %d: %v", i, offset, err)
		}
		offset = next
	}

	if d.pos != len(d.dst) {
		return nil, codecerr.Data(op, "decoded %d bytes, header says %d", d.pos, len(d.dst))
	}
	return d.dst, nil
}
