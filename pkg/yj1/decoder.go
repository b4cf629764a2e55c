package yj1

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// decoder はサブブロックの展開状態を保持します
type decoder struct {
	src  []byte
	dst  []byte
	pos  int // dst への書き込み位置
	tree huffmanTree
}

// block は offset から始まるサブブロックを展開し、次のサブブロックの位置を返します
func (d *decoder) block(offset int) (int, error) {
	if offset+blockPrefixSize > len(d.src) {
		return 0, fmt.Errorf("block header truncated")
	}

	var bh blockHeader
	bh.UncompressedLength = binary.LittleEndian.Uint16(d.src[offset:])
	bh.CompressedLength = binary.LittleEndian.Uint16(d.src[offset+2:])

	// 非圧縮ブロック
	if bh.CompressedLength == 0 {
		start := offset + blockPrefixSize
		end := start + int(bh.UncompressedLength)
		if end > len(d.src) {
			return 0, fmt.Errorf("stored block needs %d bytes, have %d", end-start, len(d.src)-start)
		}
		if d.pos+int(bh.UncompressedLength) > len(d.dst) {
			return 0, fmt.Errorf("stored block overflows output")
		}
		d.pos += copy(d.dst[d.pos:], d.src[start:end])
		return end, nil
	}

	if bh.CompressedLength < blockHeaderSize {
		return 0, fmt.Errorf("compressed length %d smaller than block header", bh.CompressedLength)
	}
	if offset+int(bh.CompressedLength) > len(d.src) {
		return 0, fmt.Errorf("block needs %d bytes, have %d", bh.CompressedLength, len(d.src)-offset)
	}
	if err := binary.Read(bytes.NewReader(d.src[offset:offset+blockHeaderSize]), binary.LittleEndian, &bh); err != nil {
		return 0, err
	}

	br := NewBitReader(d.src[offset+blockHeaderSize:])
	for {
		loop, err := d.loopCount(br, &bh)
		if err != nil {
			return 0, err
		}
		if loop == 0 {
			break
		}
		for ; loop > 0; loop-- {
			b, err := d.tree.decode(br)
			if err != nil {
				return 0, err
			}
			if d.pos >= len(d.dst) {
				return 0, fmt.Errorf("literal overflows output at %d", d.pos)
			}
			d.dst[d.pos] = b
			d.pos++
		}

		loop, err = d.loopCount(br, &bh)
		if err != nil {
			return 0, err
		}
		if loop == 0 {
			break
		}
		for ; loop > 0; loop-- {
			if err := d.backReference(br, &bh); err != nil {
				return 0, err
			}
		}
	}

	return offset + int(bh.CompressedLength), nil
}

// backReference は繰り返し長と後方オフセットを読み込み、出力済みのデータを複製します。
// 参照元と書き込み先は重なり得るため、1バイトずつ前方向にコピーします。
func (d *decoder) backReference(br *BitReader, bh *blockHeader) error {
	count, err := d.repeatCount(br, bh)
	if err != nil {
		return err
	}
	sel, err := br.Read(2)
	if err != nil {
		return err
	}
	back, err := br.Read(uint(bh.OffsetCodeLength[sel]))
	if err != nil {
		return err
	}

	if back == 0 || int(back) > d.pos {
		return fmt.Errorf("back offset %d invalid at %d", back, d.pos)
	}
	if d.pos+int(count) > len(d.dst) {
		return fmt.Errorf("copy of %d bytes overflows output at %d", count, d.pos)
	}
	for i := 0; i < int(count); i++ {
		d.dst[d.pos] = d.dst[d.pos-int(back)]
		d.pos++
	}
	return nil
}

// loopCount は1ビットのフラグと2ビットのセレクタでループ回数を読み込みます
func (d *decoder) loopCount(br *BitReader, bh *blockHeader) (uint32, error) {
	flag, err := br.Read(1)
	if err != nil {
		return 0, err
	}
	if flag != 0 {
		return uint32(bh.LoopTable[0]), nil
	}

	sel, err := br.Read(2)
	if err != nil {
		return 0, err
	}
	if sel == 0 {
		return uint32(bh.LoopTable[1]), nil
	}
	return br.Read(uint(bh.LoopCodeLength[sel-1]))
}

// repeatCount は2ビットのセレクタとエスケープビットで繰り返し長を読み込みます
func (d *decoder) repeatCount(br *BitReader, bh *blockHeader) (uint32, error) {
	sel, err := br.Read(2)
	if err != nil {
		return 0, err
	}
	if sel == 0 {
		return uint32(bh.RepeatTable[0]), nil
	}

	escape, err := br.Read(1)
	if err != nil {
		return 0, err
	}
	if escape == 1 {
		return br.Read(uint(bh.RepeatCodeLength[sel-1]))
	}
	return uint32(bh.RepeatTable[sel]), nil
}
