package gamedata

import (
	"fmt"

	"github.com/shiroemons/go-mkf/pkg/codecerr"
)

// Kind はオブジェクトの種類です。どの種類かはオブジェクト番号の範囲で決まります。
type Kind int

const (
	KindPlayer Kind = iota
	KindItem
	KindMagic
	KindEnemy
	KindPoison
)

var kindNames = [...]string{"player", "item", "magic", "enemy", "poison"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind は種類名から Kind を返します
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, codecerr.Format("gamedata.ParseKind", "unknown object kind %q", name)
}

// Object は6語のオブジェクトレコードです。内容の解釈は種類によって異なります。
type Object struct {
	Data [6]uint16
}

// ObjectData は Object.Decode が返す種類別の内容です
type ObjectData interface {
	Kind() Kind
}

// Player はキャラクターのオブジェクト
type Player struct {
	Reserved            [2]uint16
	ScriptOnFriendDeath uint16
	ScriptOnDying       uint16
}

// Item は道具のオブジェクト
type Item struct {
	Bitmap        uint16 // BALL.MKF の番号
	Price         uint16
	ScriptOnUse   uint16
	ScriptOnEquip uint16
	ScriptOnThrow uint16
	Flags         uint16
}

// Magic は仙術のオブジェクト
type Magic struct {
	MagicNumber     uint16 // DATA.MKF #3 の番号
	Reserved1       uint16
	ScriptOnSuccess uint16
	ScriptOnUse     uint16
	Reserved2       uint16
	Flags           uint16
}

// Enemy は敵のオブジェクト
type Enemy struct {
	EnemyID             uint16 // DATA.MKF #1 の番号
	ResistanceToSorcery uint16 // 0〜10
	ScriptOnTurnStart   uint16
	ScriptOnBattleEnd   uint16
	ScriptOnReady       uint16
}

// Poison は毒のオブジェクト
type Poison struct {
	PoisonLevel  uint16
	Color        uint16
	PlayerScript uint16
	Reserved     uint16
	EnemyScript  uint16
}

func (Player) Kind() Kind { return KindPlayer }
func (Item) Kind() Kind   { return KindItem }
func (Magic) Kind() Kind  { return KindMagic }
func (Enemy) Kind() Kind  { return KindEnemy }
func (Poison) Kind() Kind { return KindPoison }

// Decode はオブジェクトを kind として解釈します
func (o Object) Decode(kind Kind) (ObjectData, error) {
	d := o.Data
	switch kind {
	case KindPlayer:
		return Player{Reserved: [2]uint16{d[0], d[1]}, ScriptOnFriendDeath: d[2], ScriptOnDying: d[3]}, nil
	case KindItem:
		return Item{Bitmap: d[0], Price: d[1], ScriptOnUse: d[2], ScriptOnEquip: d[3], ScriptOnThrow: d[4], Flags: d[5]}, nil
	case KindMagic:
		return Magic{MagicNumber: d[0], Reserved1: d[1], ScriptOnSuccess: d[2], ScriptOnUse: d[3], Reserved2: d[4], Flags: d[5]}, nil
	case KindEnemy:
		return Enemy{EnemyID: d[0], ResistanceToSorcery: d[1], ScriptOnTurnStart: d[2], ScriptOnBattleEnd: d[3], ScriptOnReady: d[4]}, nil
	case KindPoison:
		return Poison{PoisonLevel: d[0], Color: d[1], PlayerScript: d[2], Reserved: d[3], EnemyScript: d[4]}, nil
	}
	return nil, codecerr.Format("gamedata.Object.Decode", "unknown object kind %d", int(kind))
}
