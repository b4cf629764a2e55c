package app

import (
	"context"

	"github.com/shiroemons/go-mkf/pkg/gamedata"
)

// StateOptions はゲームデータ表示のオプション
type StateOptions struct {
	// Kind が空でなければオブジェクトをその種類として解釈して表示します
	Kind string
	// First から Count 件のオブジェクトを表示します。Count が0なら最後まで。
	First int
	Count int
}

// State は SSS.MKF のレコード数と、指定があればオブジェクトの内容を表示します
func (a *App) State(ctx context.Context, opts StateOptions) error {
	gs, err := a.library.GameState()
	if err != nil {
		return err
	}
	a.printf("イベントオブジェクト: %d\n", len(gs.EventObjects))
	a.printf("シーン:               %d\n", len(gs.Scenes))
	a.printf("オブジェクト:         %d\n", len(gs.Objects))
	a.printf("スクリプト:           %d\n", len(gs.Scripts))

	if opts.Kind == "" {
		return nil
	}
	kind, err := gamedata.ParseKind(opts.Kind)
	if err != nil {
		return err
	}

	end := len(gs.Objects)
	if opts.Count > 0 && opts.First+opts.Count < end {
		end = opts.First + opts.Count
	}
	for i := max(opts.First, 0); i < end; i++ {
		if err := checkContext(ctx); err != nil {
			return err
		}
		d, err := gs.Objects[i].Decode(kind)
		if err != nil {
			return err
		}
		a.printf("%5d: %+v\n", i, d)
	}
	return nil
}
