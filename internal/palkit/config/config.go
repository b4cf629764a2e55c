// Package config はpalkitコマンドの設定管理を行います
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"gopkg.in/ini.v1"

	"github.com/shiroemons/go-mkf/pkg/text"
)

const Version = "0.1.0"

// FileName はデータディレクトリに置く設定ファイルの名前
const FileName = "palkit.ini"

// Config はアプリケーションの設定を保持します
type Config struct {
	DataDir   string
	OutputDir string
	Encoding  string
	CacheSize int
	DebugMode bool
	DryRun    bool
}

// Default は既定値の設定を返します
func Default() *Config {
	return &Config{
		DataDir:   ".",
		OutputDir: ".",
		Encoding:  text.DefaultEncoding,
		CacheSize: 64,
	}
}

// Flags はルートコマンドに登録する共通フラグを返します
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Value:   ".",
			Usage:   "directory containing the MKF archives",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "output directory for extracted files",
		},
		&cli.StringFlag{
			Name:  "encoding",
			Value: text.DefaultEncoding,
			Usage: "text encoding of WORD.DAT and M.MSG (auto, big5 or gbk)",
		},
		&cli.IntFlag{
			Name:  "cache",
			Value: 64,
			Usage: "number of decompressed chunks to keep in memory (0 disables)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug output",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "perform a dry run without writing output files",
		},
	}
}

// DataDirFinder はデータディレクトリを探します。見つからない場合は空文字列を返します。
type DataDirFinder interface {
	FindDataDir() (string, error)
}

// FromCommand はコマンドラインのフラグから設定を作成します。
// --data が省略され finder が nil でなければ、finder が見つけたディレクトリを使います。
// データディレクトリに palkit.ini があれば先に読み込み、明示されたフラグで上書きします。
func FromCommand(cmd *cli.Command, finder DataDirFinder) (*Config, error) {
	cfg := Default()
	if cmd.IsSet("data") {
		cfg.DataDir = cmd.String("data")
	} else if finder != nil {
		dir, err := finder.FindDataDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFindDataDir, err)
		}
		if dir != "" {
			cfg.DataDir = dir
		}
	}

	path := filepath.Join(cfg.DataDir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if cmd.IsSet("out") {
		cfg.OutputDir = cmd.String("out")
	}
	if cmd.IsSet("encoding") {
		cfg.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("cache") {
		cfg.CacheSize = cmd.Int("cache")
	}
	if cmd.IsSet("debug") {
		cfg.DebugMode = cmd.Bool("debug")
	}
	if cmd.IsSet("dry-run") {
		cfg.DryRun = cmd.Bool("dry-run")
	}
	return cfg, nil
}

// LoadFile はini形式の設定ファイルを読み込みます。
// [palkit] セクションの output, encoding, cache, debug を参照します。
func (c *Config) LoadFile(path string) error {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections:     true,
		InsensitiveKeys:         true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}

	sec := f.Section("palkit")
	if out := sec.Key("output").String(); out != "" {
		// 相対パスは設定ファイルの位置から解決する
		if !filepath.IsAbs(out) {
			out = filepath.Join(filepath.Dir(path), out)
		}
		c.OutputDir = out
	}
	c.Encoding = strings.ToLower(sec.Key("encoding").MustString(c.Encoding))
	c.CacheSize = sec.Key("cache").MustInt(c.CacheSize)
	c.DebugMode = sec.Key("debug").MustBool(c.DebugMode)
	return nil
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	log     zerolog.Logger
}

// NewDebugLogger は標準エラー出力に書き込むDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerTo(os.Stderr, enabled)
}

// NewDebugLoggerTo は w に書き込むDebugLoggerを作成します
func NewDebugLoggerTo(w io.Writer, enabled bool) *DebugLogger {
	level := zerolog.Disabled
	if enabled {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:          zerolog.SyncWriter(w),
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return &DebugLogger{
		enabled: enabled,
		log:     zerolog.New(out).Level(level),
	}
}

// Enabled はデバッグモードが有効か返します
func (d *DebugLogger) Enabled() bool {
	return d.enabled
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	d.log.Debug().Msgf(strings.TrimRight(format, "\n"), a...)
}

// Debug は構造化フィールド付きのデバッグ出力を開始します。無効な場合は何も出力しません。
func (d *DebugLogger) Debug() *zerolog.Event {
	return d.log.Debug()
}
