package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/shiroemons/go-mkf/internal/palkit/config"
)

func main() {
	cmd := &cli.Command{
		Name:    "palkit",
		Usage:   "inspect and export the MKF archives of a data directory",
		Version: config.Version,
		Flags:   config.Flags(),
		Commands: []*cli.Command{
			listCommand(),
			extractCommand(),
			spriteCommand(),
			mapCommand(),
			rngCommand(),
			textCommand(),
			infoCommand(),
			stateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
