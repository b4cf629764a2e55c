package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/shiroemons/go-mkf/internal/palkit/app"
	"github.com/shiroemons/go-mkf/internal/palkit/config"
	"github.com/shiroemons/go-mkf/internal/palkit/fileutil"
)

// withApp は設定を読み込んでAppを作成し、fn の実行後に閉じます
func withApp(cmd *cli.Command, fn func(a *app.App) error) error {
	// --data が省略された場合はカレントディレクトリ、実行ファイルのディレクトリの順に探す
	finder := fileutil.NewMKFFinder(fileutil.NewOSFileSystem())
	cfg, err := config.FromCommand(cmd, finder)
	if err != nil {
		return err
	}
	logger := config.NewDebugLogger(cfg.DebugMode)
	logger.Printf("palkit %s: data=%s out=%s encoding=%s cache=%d", config.Version, cfg.DataDir, cfg.OutputDir, cfg.Encoding, cfg.CacheSize)

	a, err := app.NewWithOptions(cfg, app.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// parseIndex はチャンク番号を解析します
func parseIndex(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("無効な番号です: %q", s)
	}
	return uint32(n), nil
}

// maxIndices は一度に指定できるチャンク番号の上限
const maxIndices = 1 << 16

// parseIndices は "3" や "10-15" の形式の番号を展開します
func parseIndices(args []string) ([]uint32, error) {
	var indices []uint32
	for _, arg := range args {
		lo, hi, isRange := strings.Cut(arg, "-")
		first, err := parseIndex(lo)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = parseIndex(hi); err != nil {
				return nil, err
			}
			if last < first {
				return nil, fmt.Errorf("無効な範囲です: %q", arg)
			}
		}
		if uint64(last-first)+1 > uint64(maxIndices-len(indices)) {
			return nil, fmt.Errorf("範囲が大きすぎます: %q (最大 %d 件)", arg, maxIndices)
		}
		for i := first; i <= last; i++ {
			indices = append(indices, i)
			if i == last {
				break
			}
		}
	}
	return indices, nil
}

// requireArgs は位置引数の数を確認します
func requireArgs(cmd *cli.Command, n int) error {
	if cmd.Args().Len() < n {
		return fmt.Errorf("引数が足りません: palkit %s %s", cmd.Name, cmd.ArgsUsage)
	}
	return nil
}

func paletteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "palette",
			Value: 0,
			Usage: "palette number in PAT.MKF",
		},
		&cli.BoolFlag{
			Name:  "night",
			Usage: "use the night half of the palette when present",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "integer scale factor for the PNG output",
		},
	}
}

func paletteOptions(cmd *cli.Command) app.PaletteOptions {
	return app.PaletteOptions{
		Index: uint32(max(cmd.Int("palette"), 0)),
		Night: cmd.Bool("night"),
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list the archives, or the chunks of one archive",
		ArgsUsage: "[ARCHIVE]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(cmd, func(a *app.App) error {
				if cmd.Args().Len() == 0 {
					return a.ListArchives(ctx)
				}
				return a.ListChunks(ctx, cmd.Args().First())
			})
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "write chunks to the output directory",
		ArgsUsage: "ARCHIVE [INDEX|FIRST-LAST ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "decompress",
				Aliases: []string{"x"},
				Usage:   "decompress YJ_1 chunks before writing",
			},
			&cli.BoolFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "use parallel extraction",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   app.DefaultWorkers,
				Usage:   "number of workers for parallel extraction",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			indices, err := parseIndices(cmd.Args().Tail())
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				res, err := a.Extract(ctx, cmd.Args().First(), app.ExtractOptions{
					Indices:    indices,
					Decompress: cmd.Bool("decompress"),
					Parallel:   cmd.Bool("parallel"),
					Workers:    cmd.Int("workers"),
				})
				fmt.Printf("%d 個のチャンクを書き出しました（空 %d 個）\n", res.Written, res.Skipped)
				return err
			})
		},
	}
}

func spriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "sprite",
		Usage:     "export every frame of a sprite chunk as PNG",
		ArgsUsage: "ARCHIVE INDEX",
		Flags: append(paletteFlags(), &cli.BoolFlag{
			Name:  "decompress",
			Usage: "always treat the chunk as YJ_1",
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}
			index, err := parseIndex(cmd.Args().Get(1))
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				n, err := a.Sprite(ctx, cmd.Args().First(), index, app.SpriteOptions{
					Palette:    paletteOptions(cmd),
					Decompress: cmd.Bool("decompress"),
					Scale:      cmd.Int("scale"),
				})
				if err != nil {
					return err
				}
				fmt.Printf("%d フレームを書き出しました\n", n)
				return nil
			})
		},
	}
}

func mapCommand() *cli.Command {
	return &cli.Command{
		Name:      "map",
		Usage:     "render a whole map from MAP.MKF and GOP.MKF as PNG",
		ArgsUsage: "INDEX",
		Flags:     paletteFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			index, err := parseIndex(cmd.Args().First())
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				return a.Map(ctx, index, app.MapOptions{
					Palette: paletteOptions(cmd),
					Scale:   cmd.Int("scale"),
				})
			})
		},
	}
}

func rngCommand() *cli.Command {
	return &cli.Command{
		Name:      "rng",
		Usage:     "play back a movie from RNG.MKF and export its frames as PNG",
		ArgsUsage: "INDEX",
		Flags: append(paletteFlags(), &cli.IntFlag{
			Name:  "limit",
			Usage: "maximum number of frames to export (0 for all)",
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			index, err := parseIndex(cmd.Args().First())
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				n, err := a.RNG(ctx, index, app.RNGOptions{
					Palette: paletteOptions(cmd),
					Limit:   cmd.Int("limit"),
					Scale:   cmd.Int("scale"),
				})
				if err != nil {
					return err
				}
				fmt.Printf("%d フレームを書き出しました\n", n)
				return nil
			})
		},
	}
}

func textCommand() *cli.Command {
	return &cli.Command{
		Name:      "text",
		Usage:     "print WORD.DAT or M.MSG",
		ArgsUsage: "words|messages",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				return a.Text(ctx, cmd.Args().First())
			})
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show what is known about one chunk",
		ArgsUsage: "ARCHIVE INDEX",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}
			index, err := parseIndex(cmd.Args().Get(1))
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				return a.Info(ctx, cmd.Args().First(), index)
			})
		},
	}
}

func stateCommand() *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "summarize the records in SSS.MKF",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "decode objects as player, item, magic, enemy or poison",
			},
			&cli.IntFlag{
				Name:  "first",
				Usage: "first object to print",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of objects to print (0 for all)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(cmd, func(a *app.App) error {
				return a.State(ctx, app.StateOptions{
					Kind:  cmd.String("kind"),
					First: cmd.Int("first"),
					Count: cmd.Int("count"),
				})
			})
		},
	}
}
