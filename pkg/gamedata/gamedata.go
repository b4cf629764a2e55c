// Package gamedata はSSS.MKFに格納された固定長レコードを読み込みます。
//
// SSS.MKF のチャンク構成:
//   - #0: イベントオブジェクト
//   - #1: シーン
//   - #2: オブジェクト
//   - #3: メッセージのオフセット表（text パッケージで使用）
//   - #4: スクリプト
package gamedata

import (
	"bytes"
	"encoding/binary"
	"reflect"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

// SSS.MKF のチャンク番号
const (
	ChunkEventObjects   = 0
	ChunkScenes         = 1
	ChunkObjects        = 2
	ChunkMessageOffsets = 3
	ChunkScripts        = 4
)

// ObjectState はイベントオブジェクトの状態
type ObjectState int16

const (
	StateHidden  ObjectState = 0
	StateNormal  ObjectState = 1
	StateBlocker ObjectState = 2
)

// EventObject はマップ上に置かれるイベントオブジェクトです
type EventObject struct {
	VanishTime               uint16
	X                        uint16
	Y                        uint16
	Layer                    uint16
	TriggerScript            uint16
	AutoScript               uint16
	State                    ObjectState
	TriggerMode              uint16
	SpriteNum                uint16
	SpriteFrames             uint16
	Direction                uint16
	CurrentFrameNum          uint16
	ScriptIdleFrame          uint16
	SpritePtrOffset          uint16
	SpriteFramesAuto         uint16
	ScriptIdleFrameCountAuto uint16
}

// Scene はシーンの定義です。
// このシーンのイベントオブジェクトは EventObjectIndex+1 番から始まります。
type Scene struct {
	MapNum           uint16
	ScriptOnEnter    uint16
	ScriptOnTeleport uint16
	EventObjectIndex uint16
}

// ScriptEntry はスクリプトの1命令です
type ScriptEntry struct {
	Operation uint16
	Operands  [3]uint16
}

// decodeRecords はバイト列を固定長レコードの配列として読み込みます。
// 末尾の端数は無視します。
func decodeRecords[T any](op string, data []byte) ([]T, error) {
	var zero T
	size := binary.Size(zero)
	if size <= 0 {
		return nil, codecerr.Format(op, "%s has no fixed size", reflect.TypeOf(zero))
	}

	n := len(data) / size
	out := make([]T, n)
	if err := binary.Read(bytes.NewReader(data[:n*size]), binary.LittleEndian, out); err != nil {
		return nil, codecerr.Data(op, "%v", err)
	}
	return out, nil
}

// DecodeEventObjects はイベントオブジェクトの配列を読み込みます
func DecodeEventObjects(data []byte) ([]EventObject, error) {
	return decodeRecords[EventObject]("gamedata.DecodeEventObjects", data)
}

// DecodeScenes はシーンの配列を読み込みます
func DecodeScenes(data []byte) ([]Scene, error) {
	return decodeRecords[Scene]("gamedata.DecodeScenes", data)
}

// DecodeObjects はオブジェクトの配列を読み込みます
func DecodeObjects(data []byte) ([]Object, error) {
	return decodeRecords[Object]("gamedata.DecodeObjects", data)
}

// DecodeScripts はスクリプトの配列を読み込みます
func DecodeScripts(data []byte) ([]ScriptEntry, error) {
	return decodeRecords[ScriptEntry]("gamedata.DecodeScripts", data)
}
