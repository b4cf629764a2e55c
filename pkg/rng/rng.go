// Package rng はRNG動画のフレーム差分を展開します。
//
// 各フレームは直前のフレームに対する差分で、1バイトのオペコードと
// 2バイト単位のピクセルデータの列です。
package rng

import (
	"encoding/binary"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

const unitSize = 2

// decoder は Decode の読み書き位置を保持します
type decoder struct {
	src  []byte
	dst  []byte
	sp   int
	dp   int
	last byte // 直前のオペコード (エラーメッセージ用)
}

// Decode は差分データ src を dst に適用します。
// dst は呼び出し側が確保した前フレームのバッファで、書き込まれない位置は変更されません。
func Decode(src, dst []byte) error {
	d := &decoder{src: src, dst: dst}
	return d.run()
}

func (d *decoder) run() error {
	const op = "rng.Decode"

	for d.sp < len(d.src) {
		code := d.src[d.sp]
		d.sp++
		d.last = code

		var err error
		switch {
		case code == 0x00 || code == 0x13:
			return nil
		case code == 0x01 || code == 0x05:
		case code == 0x02:
			err = d.skip(1)
		case code == 0x03:
			var n int
			if n, err = d.byteArg(); err == nil {
				err = d.skip(n + 1)
			}
		case code == 0x04:
			var n int
			if n, err = d.wordArg(); err == nil {
				err = d.skip(n + 1)
			}
		case code >= 0x06 && code <= 0x0A:
			err = d.copyUnits(int(code) - 0x05)
		case code == 0x0B:
			var n int
			if n, err = d.byteArg(); err == nil {
				err = d.copyUnits(n + 1)
			}
		case code == 0x0C:
			var n int
			if n, err = d.wordArg(); err == nil {
				err = d.copyUnits(n + 1)
			}
		case code >= 0x0D && code <= 0x10:
			err = d.repeatUnit(int(code) - 0x0B)
		case code == 0x11:
			var n int
			if n, err = d.byteArg(); err == nil {
				err = d.repeatUnit(n + 1)
			}
		case code == 0x12:
			var n int
			if n, err = d.wordArg(); err == nil {
				err = d.repeatUnit(n + 1)
			}
		default:
			return codecerr.Format(op, "unknown opcode 0x%02X at offset %d", code, d.sp-1)
		}
		if err != nil {
			return codecerr.Data(op, "opcode 0x%02X: %v", d.last, err)
		}
	}
	return nil
}

func (d *decoder) byteArg() (int, error) {
	if d.sp >= len(d.src) {
		return 0, errSourceOverrun
	}
	v := d.src[d.sp]
	d.sp++
	return int(v), nil
}

func (d *decoder) wordArg() (int, error) {
	if d.sp+2 > len(d.src) {
		return 0, errSourceOverrun
	}
	v := binary.LittleEndian.Uint16(d.src[d.sp:])
	d.sp += 2
	return int(v), nil
}

// skip は出力位置を n 単位進めます
func (d *decoder) skip(n int) error {
	if d.dp+n*unitSize > len(d.dst) {
		return errDestinationOverrun
	}
	d.dp += n * unitSize
	return nil
}

// copyUnits は n 単位をそのまま複写します
func (d *decoder) copyUnits(n int) error {
	size := n * unitSize
	if d.sp+size > len(d.src) {
		return errSourceOverrun
	}
	if d.dp+size > len(d.dst) {
		return errDestinationOverrun
	}
	copy(d.dst[d.dp:d.dp+size], d.src[d.sp:d.sp+size])
	d.sp += size
	d.dp += size
	return nil
}

// repeatUnit は次の1単位を n 回書き込みます
func (d *decoder) repeatUnit(n int) error {
	if d.sp+unitSize > len(d.src) {
		return errSourceOverrun
	}
	if d.dp+n*unitSize > len(d.dst) {
		return errDestinationOverrun
	}
	unit := d.src[d.sp : d.sp+unitSize]
	for range n {
		d.dp += copy(d.dst[d.dp:], unit)
	}
	d.sp += unitSize
	return nil
}
