// Package assets はデータディレクトリのMKFアーカイブをまとめて扱います
package assets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	palerrors "github.com/shiroemons/go-mkf/internal/palkit/errors"
	"github.com/shiroemons/go-mkf/internal/palkit/fileutil"
	"github.com/shiroemons/go-mkf/internal/palkit/interfaces"
	"github.com/shiroemons/go-mkf/pkg/gamedata"
	"github.com/shiroemons/go-mkf/pkg/mkf"
	"github.com/shiroemons/go-mkf/pkg/palette"
	"github.com/shiroemons/go-mkf/pkg/text"
	"github.com/shiroemons/go-mkf/pkg/tilemap"
)

// 単独ファイルとして置かれるテキスト
const (
	WordFile    = "WORD.DAT"
	MessageFile = "M.MSG"
)

// MKFOpener は mkf.Open でアーカイブを開きます
type MKFOpener struct{}

// Open はアーカイブを開きます
func (MKFOpener) Open(path string) (interfaces.Archive, error) {
	a, err := mkf.Open(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Options はライブラリのオプション
type Options struct {
	FileSystem interfaces.FileSystem
	Finder     interfaces.ArchiveFinder
	Opener     interfaces.ArchiveOpener
	Logger     interfaces.Logger
	// CacheSize は展開済みチャンクのキャッシュ数。0でキャッシュしません。
	CacheSize int
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Library はデータディレクトリのアーカイブを必要になった時点で開きます
type Library struct {
	dir    string
	fs     interfaces.FileSystem
	finder interfaces.ArchiveFinder
	opener interfaces.ArchiveOpener
	logger interfaces.Logger
	cache  *lru.Cache[chunkKey, []byte]

	mu      sync.Mutex
	paths   map[string]string
	sources map[string]*Source
	closed  bool
}

// New は dir を対象とするライブラリを作成します
func New(dir string, opts Options) (*Library, error) {
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Opener == nil {
		opts.Opener = MKFOpener{}
	}
	if opts.FileSystem == nil {
		opts.FileSystem = fileutil.NewOSFileSystem()
	}
	if opts.Finder == nil {
		opts.Finder = fileutil.NewMKFFinder(opts.FileSystem)
	}

	l := &Library{
		dir:     dir,
		fs:      opts.FileSystem,
		finder:  opts.Finder,
		opener:  opts.Opener,
		logger:  opts.Logger,
		sources: make(map[string]*Source),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[chunkKey, []byte](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCreateCache, err)
		}
		l.cache = cache
	}
	return l, nil
}

// Dir はデータディレクトリを返します
func (l *Library) Dir() string {
	return l.dir
}

func (l *Library) findLocked() (map[string]string, error) {
	if l.paths != nil {
		return l.paths, nil
	}
	paths, err := l.finder.Find(l.dir)
	if err != nil {
		return nil, palerrors.NewArchiveError("search", l.dir, err)
	}
	l.logger.Printf("%s で %d 個のアーカイブを検出", l.dir, len(paths))
	l.paths = paths
	return paths, nil
}

// Names はデータディレクトリにあるアーカイブ名を名前順で返します
func (l *Library) Names() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	paths, err := l.findLocked()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Archive は名前（大文字小文字を区別しない、拡張子なし）でアーカイブを開きます。
// 一度開いたアーカイブは Close まで再利用されます。
func (l *Library) Archive(name string) (*Source, error) {
	name = strings.TrimSuffix(strings.ToUpper(name), ".MKF")

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLibraryClosed
	}
	if s, ok := l.sources[name]; ok {
		return s, nil
	}

	paths, err := l.findLocked()
	if err != nil {
		return nil, err
	}
	path, ok := paths[name]
	if !ok {
		return nil, palerrors.NewArchiveError("open", name+".MKF", palerrors.ErrArchiveNotFound)
	}

	a, err := l.opener.Open(path)
	if err != nil {
		return nil, palerrors.NewArchiveError("open", path, fmt.Errorf("%w: %w", palerrors.ErrInvalidArchive, err))
	}
	l.logger.Printf("%s を開きました（%d チャンク）", path, a.ChunkCount())

	s := &Source{Archive: a, name: name, cache: l.cache}
	l.sources[name] = s
	return s, nil
}

// Palette は PAT.MKF の index 番目のパレットを返します。
// night が真でも夜のパレットがなければ昼のパレットを返します。
func (l *Library) Palette(index uint32, night bool) (palette.Palette, error) {
	pat, err := l.Archive("PAT")
	if err != nil {
		return palette.Palette{}, err
	}
	data, err := pat.ReadChunk(index)
	if err != nil {
		return palette.Palette{}, palerrors.NewChunkError("PAT", index, err)
	}
	if night && palette.HasNight(data) {
		return palette.FromRawNight(data)
	}
	return palette.FromRaw(data)
}

// Map は MAP.MKF と GOP.MKF から index 番目のマップを読み込みます
func (l *Library) Map(index uint32) (*tilemap.Map, error) {
	maps, err := l.Archive("MAP")
	if err != nil {
		return nil, err
	}
	tiles, err := l.Archive("GOP")
	if err != nil {
		return nil, err
	}
	m, err := tilemap.Load(maps, tiles, index)
	if err != nil {
		return nil, palerrors.NewChunkError("MAP", index, err)
	}
	return m, nil
}

func (l *Library) readFile(name string) ([]byte, error) {
	path, err := fileutil.FindFile(l.fs, l.dir, name)
	if err != nil {
		return nil, palerrors.NewArchiveError("read", name, fmt.Errorf("%w: %w", palerrors.ErrFileNotFound, err))
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, palerrors.NewArchiveError("read", path, err)
	}
	return data, nil
}

// Words は WORD.DAT の単語を返します
func (l *Library) Words(dec *text.Decoder) ([]string, error) {
	data, err := l.readFile(WordFile)
	if err != nil {
		return nil, err
	}
	dec = dec.Resolve(data)
	l.logger.Printf("%s の文字コード: %s", WordFile, dec.Name())
	return dec.DecodeWords(data)
}

// Messages は M.MSG を SSS.MKF のオフセット表に従って分割したメッセージを返します
func (l *Library) Messages(dec *text.Decoder) ([]string, error) {
	msg, err := l.readFile(MessageFile)
	if err != nil {
		return nil, err
	}
	sss, err := l.Archive("SSS")
	if err != nil {
		return nil, err
	}
	offsets, err := sss.ReadChunkOrEmpty(gamedata.ChunkMessageOffsets)
	if err != nil {
		return nil, palerrors.NewChunkError("SSS", gamedata.ChunkMessageOffsets, err)
	}
	dec = dec.Resolve(msg)
	l.logger.Printf("%s の文字コード: %s", MessageFile, dec.Name())
	return dec.DecodeMessages(msg, offsets)
}

// GameState は SSS.MKF の固定長レコードをまとめたものです
type GameState struct {
	EventObjects []gamedata.EventObject
	Scenes       []gamedata.Scene
	Objects      []gamedata.Object
	Scripts      []gamedata.ScriptEntry
}

// GameState は SSS.MKF のイベントオブジェクト・シーン・オブジェクト・スクリプトを読み込みます
func (l *Library) GameState() (*GameState, error) {
	sss, err := l.Archive("SSS")
	if err != nil {
		return nil, err
	}

	read := func(index uint32) ([]byte, error) {
		data, err := sss.ReadChunkOrEmpty(index)
		if err != nil {
			return nil, palerrors.NewChunkError("SSS", index, err)
		}
		return data, nil
	}

	var gs GameState
	data, err := read(gamedata.ChunkEventObjects)
	if err != nil {
		return nil, err
	}
	if gs.EventObjects, err = gamedata.DecodeEventObjects(data); err != nil {
		return nil, err
	}

	if data, err = read(gamedata.ChunkScenes); err != nil {
		return nil, err
	}
	if gs.Scenes, err = gamedata.DecodeScenes(data); err != nil {
		return nil, err
	}

	if data, err = read(gamedata.ChunkObjects); err != nil {
		return nil, err
	}
	if gs.Objects, err = gamedata.DecodeObjects(data); err != nil {
		return nil, err
	}

	if data, err = read(gamedata.ChunkScripts); err != nil {
		return nil, err
	}
	if gs.Scripts, err = gamedata.DecodeScripts(data); err != nil {
		return nil, err
	}
	return &gs, nil
}

// CacheLen はキャッシュされているチャンク数を返します
func (l *Library) CacheLen() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}

// Close は開いたアーカイブをすべて閉じます
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	for name, s := range l.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, palerrors.NewArchiveError("close", name, err))
		}
	}
	l.sources = nil
	if l.cache != nil {
		l.cache.Purge()
	}
	return errors.Join(errs...)
}
