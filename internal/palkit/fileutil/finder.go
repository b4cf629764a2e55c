package fileutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shiroemons/go-mkf/internal/palkit/interfaces"
)

// MKFFilePattern はMKFアーカイブのファイル名パターン（大文字小文字を区別しない）
var MKFFilePattern = regexp.MustCompile(`(?i)^([a-z0-9_]+)\.mkf$`)

// MKFFinder はデータディレクトリからMKFアーカイブを検索します
type MKFFinder struct {
	fs interfaces.FileSystem
}

// NewMKFFinder は新しいMKFFinderを作成します
func NewMKFFinder(fs interfaces.FileSystem) *MKFFinder {
	return &MKFFinder{fs: fs}
}

// Find は dir 内のMKFファイルを大文字のアーカイブ名で返します
func (f *MKFFinder) Find(dir string) (map[string]string, error) {
	files, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	found := make(map[string]string)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		m := MKFFilePattern.FindStringSubmatch(file.Name())
		if m == nil {
			continue
		}
		found[strings.ToUpper(m[1])] = filepath.Join(dir, file.Name())
	}
	return found, nil
}

// FindDataDir はカレントディレクトリ、実行ファイルのディレクトリの順にMKFファイルを含むディレクトリを探します。
// 見つからない場合は空文字列を返します。
func (f *MKFFinder) FindDataDir() (string, error) {
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}
	if found, err := f.Find(currentDir); err == nil && len(found) > 0 {
		return currentDir, nil
	}

	execPath, err := f.fs.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetExecutablePath, err)
	}
	execDir := filepath.Dir(execPath)
	if found, err := f.Find(execDir); err == nil && len(found) > 0 {
		return execDir, nil
	}
	return "", nil
}

// FindFile は dir 内の name を大文字小文字を区別せずに探します
func FindFile(fs interfaces.FileSystem, dir, name string) (string, error) {
	files, err := fs.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}
	for _, file := range files {
		if !file.IsDir() && strings.EqualFold(file.Name(), name) {
			return filepath.Join(dir, file.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
}
