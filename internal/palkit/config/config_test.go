package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// parse はフラグを解析して得られた設定を返します
func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	return parseWith(t, nil, args...)
}

// parseWith は finder を使ってフラグを解析します
func parseWith(t *testing.T, finder DataDirFinder, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	cmd := &cli.Command{
		Name:  "palkit",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cfgErr = FromCommand(cmd, finder)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"palkit"}, args...)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return cfg, cfgErr
}

func TestFromCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "既定値",
			args: nil,
			want: Config{DataDir: ".", OutputDir: ".", Encoding: "auto", CacheSize: 64},
		},
		{
			name: "全フラグ指定",
			args: []string{"--data", dir, "-o", "/tmp/out", "--encoding", "gbk", "--cache", "0", "--debug", "-n"},
			want: Config{DataDir: dir, OutputDir: "/tmp/out", Encoding: "gbk", CacheSize: 0, DebugMode: true, DryRun: true},
		},
		{
			name: "短縮形",
			args: []string{"-d", dir},
			want: Config{DataDir: dir, OutputDir: ".", Encoding: "auto", CacheSize: 64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...)
			if err != nil {
				t.Fatalf("FromCommand() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("FromCommand() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestFromCommand_IniFile(t *testing.T) {
	dir := t.TempDir()
	ini := "[PalKit]\nOutput = extracted\nencoding = GBK\ncache = 8\ndebug = true\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(ini), 0644); err != nil {
		t.Fatal(err)
	}

	// ファイルの値が使われる
	cfg, err := parse(t, "-d", dir)
	if err != nil {
		t.Fatalf("FromCommand() error = %v", err)
	}
	want := Config{DataDir: dir, OutputDir: filepath.Join(dir, "extracted"), Encoding: "gbk", CacheSize: 8, DebugMode: true}
	if *cfg != want {
		t.Errorf("FromCommand() = %+v, want %+v", *cfg, want)
	}

	// 明示したフラグが優先される
	cfg, err = parse(t, "-d", dir, "--cache", "2", "-o", "/abs")
	if err != nil {
		t.Fatalf("FromCommand() error = %v", err)
	}
	if cfg.CacheSize != 2 || cfg.OutputDir != "/abs" || cfg.Encoding != "gbk" {
		t.Errorf("FromCommand() = %+v", *cfg)
	}
}

// stubFinder は決まったディレクトリを返します
type stubFinder struct {
	dir string
	err error
}

func (f stubFinder) FindDataDir() (string, error) {
	return f.dir, f.err
}

func TestFromCommand_FoundDataDir(t *testing.T) {
	dir := t.TempDir()
	ini := "[palkit]\nencoding = gbk\ncache = 3\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(ini), 0644); err != nil {
		t.Fatal(err)
	}
	other := t.TempDir()

	tests := []struct {
		name    string
		finder  DataDirFinder
		args    []string
		want    Config
		wantErr error
	}{
		{
			name:   "検出したディレクトリの設定ファイルを読む",
			finder: stubFinder{dir: dir},
			want:   Config{DataDir: dir, OutputDir: ".", Encoding: "gbk", CacheSize: 3},
		},
		{
			name:   "明示したフラグが設定ファイルより優先される",
			finder: stubFinder{dir: dir},
			args:   []string{"--encoding", "big5"},
			want:   Config{DataDir: dir, OutputDir: ".", Encoding: "big5", CacheSize: 3},
		},
		{
			name:   "--dataがあれば検出しない",
			finder: stubFinder{dir: dir},
			args:   []string{"-d", other},
			want:   Config{DataDir: other, OutputDir: ".", Encoding: "auto", CacheSize: 64},
		},
		{
			name:   "見つからない",
			finder: stubFinder{},
			want:   Config{DataDir: ".", OutputDir: ".", Encoding: "auto", CacheSize: 64},
		},
		{
			name:    "検出エラー",
			finder:  stubFinder{err: errors.New("getwd failed")},
			wantErr: ErrFindDataDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseWith(t, tt.finder, tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FromCommand() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromCommand() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("FromCommand() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoadFile_Error(t *testing.T) {
	cfg := Default()
	err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.ini"))
	if !errors.Is(err, ErrLoadConfig) {
		t.Errorf("LoadFile() error = %v, want ErrLoadConfig", err)
	}
}

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer

	// デバッグモード有効
	logger := NewDebugLoggerTo(&buf, true)
	logger.Printf("test message %d\n", 123)
	logger.Debug().Uint32("chunk", 7).Msg("structured")

	output := buf.String()
	if !strings.Contains(output, "test message 123") {
		t.Errorf("Expected debug output to contain 'test message 123', got '%s'", output)
	}
	if !strings.Contains(output, "chunk=7") {
		t.Errorf("Expected structured field 'chunk=7', got '%s'", output)
	}
	if !logger.Enabled() {
		t.Error("Enabled() = false, want true")
	}

	// デバッグモード無効
	buf.Reset()
	logger = NewDebugLoggerTo(&buf, false)
	logger.Printf("should not appear\n")
	logger.Debug().Msg("should not appear either")

	if buf.Len() != 0 {
		t.Errorf("Debug output should not appear when debug mode is disabled, got '%s'", buf.String())
	}
}
