package app

import (
	"context"
	"fmt"
)

// テキストの種別
const (
	TextWords    = "words"
	TextMessages = "messages"
)

// Text は WORD.DAT の単語または M.MSG のメッセージを番号付きで表示します
func (a *App) Text(ctx context.Context, kind string) error {
	dec, err := a.decoder()
	if err != nil {
		return err
	}

	var lines []string
	switch kind {
	case TextWords:
		lines, err = a.library.Words(dec)
	case TextMessages:
		lines, err = a.library.Messages(dec)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTextKind, kind)
	}
	if err != nil {
		return err
	}
	a.logger.Printf("%s: %d 件", kind, len(lines))

	for i, line := range lines {
		if err := checkContext(ctx); err != nil {
			return err
		}
		a.printf("%5d: %s\n", i, line)
	}
	return nil
}
