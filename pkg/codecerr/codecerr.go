// Package codecerr はMKFアーカイブと各コーデックが返すエラーの分類を定義します。
//
// すべてのエラーは次の4種類のいずれかに分類され、errors.Is で判定できます。
//
//	data, err := archive.ReadChunk(10)
//	if errors.Is(err, codecerr.ErrIndex) {
//	    // 範囲外のチャンク
//	}
package codecerr

import (
	"errors"
	"fmt"
)

var (
	// ErrIO は下位ストレージの読み込み・シークに失敗した場合のエラー
	ErrIO = errors.New("I/Oエラー")

	// ErrFormat はシグネチャ不一致や未知のオペコードなど、形式が不正な場合のエラー
	ErrFormat = errors.New("不正なフォーマットです")

	// ErrIndex はチャンク・フレーム・サブチャンクのインデックスが範囲外の場合のエラー
	ErrIndex = errors.New("インデックスが範囲外です")

	// ErrData は構造上は妥当に見えるが内容が空または不正な場合のエラー
	ErrData = errors.New("不正なデータです")
)

// Error はコーデック層のエラー
type Error struct {
	Op   string // 実行していた操作
	Kind error  // ErrIO, ErrFormat, ErrIndex, ErrData のいずれか
	Err  error  // 元のエラー (nil可)
}

// Error はエラーメッセージを返します
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap は分類と元のエラーを返します
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IO はErrIOに分類されるエラーを作成します
func IO(op string, err error) error {
	return &Error{Op: op, Kind: ErrIO, Err: err}
}

// Format はErrFormatに分類されるエラーを作成します
func Format(op, format string, a ...any) error {
	return &Error{Op: op, Kind: ErrFormat, Err: fmt.Errorf(format, a...)}
}

// Index はErrIndexに分類されるエラーを作成します
func Index(op string, index, limit uint32) error {
	return &Error{Op: op, Kind: ErrIndex, Err: fmt.Errorf("index %d (count %d)", index, limit)}
}

// Data はErrDataに分類されるエラーを作成します
func Data(op, format string, a ...any) error {
	return &Error{Op: op, Kind: ErrData, Err: fmt.Errorf(format, a...)}
}
