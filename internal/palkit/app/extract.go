package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	palerrors "github.com/shiroemons/go-mkf/internal/palkit/errors"
	"github.com/shiroemons/go-mkf/internal/palkit/fileutil"
	"github.com/shiroemons/go-mkf/pkg/codecerr"
	"github.com/shiroemons/go-mkf/pkg/yj1"
)

// DefaultWorkers は並列抽出のデフォルトのワーカー数
const DefaultWorkers = 4

// ExtractOptions はチャンク抽出のオプション
type ExtractOptions struct {
	// Indices は抽出するチャンク番号。空なら全チャンク。
	Indices    []uint32
	Decompress bool
	Parallel   bool
	Workers    int
}

// ExtractResult は抽出の結果
type ExtractResult struct {
	Written int
	Skipped int
}

// 抽出ジョブ。アーカイブの読み込みは投入側で済ませておきます。
type extractJob struct {
	index   uint32
	data    []byte
	outPath string
}

type extractResult struct {
	index uint32
	path  string
	err   error
}

// Extract はアーカイブのチャンクを出力ディレクトリに書き出します。
// 空のチャンクは書き出さずに数えます。
func (a *App) Extract(ctx context.Context, archive string, opts ExtractOptions) (ExtractResult, error) {
	var res ExtractResult

	src, err := a.library.Archive(archive)
	if err != nil {
		return res, err
	}

	indices := opts.Indices
	if len(indices) == 0 {
		indices = make([]uint32, src.ChunkCount())
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, i := range indices {
		if i >= src.ChunkCount() {
			return res, palerrors.NewChunkError(src.Name(), i, codecerr.Index("app.Extract", i, src.ChunkCount()))
		}
	}

	if !a.config.DryRun {
		if err := a.fs.MkdirAll(a.config.OutputDir, 0755); err != nil {
			return res, fmt.Errorf("%w: %w", fileutil.ErrCreateDirectory, err)
		}
	}

	workers := 1
	if opts.Parallel {
		workers = opts.Workers
		if workers <= 0 {
			workers = DefaultWorkers
		}
	}

	jobs := make(chan extractJob, workers*2)
	results := make(chan extractResult, workers*2)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- a.extractChunk(job, opts.Decompress)
			}
		}()
	}

	// 結果処理用のgoroutine
	var resultErr error
	resultDone := make(chan struct{})
	go func() {
		defer close(resultDone)
		for r := range results {
			if r.err != nil {
				if resultErr == nil {
					resultErr = palerrors.NewChunkError(src.Name(), r.index, fmt.Errorf("%w: %w", ErrExtract, r.err))
				}
				continue
			}
			res.Written++
			if a.config.DryRun {
				a.printf("%s\n", r.path)
			} else {
				a.logger.Printf("書き出し: %s", r.path)
			}
		}
	}()

	// アーカイブへのアクセスはこのgoroutineだけで行う
	var produceErr error
	for _, i := range indices {
		if produceErr = checkContext(ctx); produceErr != nil {
			break
		}
		size, err := src.ChunkSize(i)
		if err != nil {
			produceErr = palerrors.NewChunkError(src.Name(), i, err)
			break
		}
		if size == 0 {
			res.Skipped++
			a.logger.Printf("%s #%d は空のためスキップ", src.Name(), i)
			continue
		}
		data, err := src.ReadChunk(i)
		if err != nil {
			produceErr = palerrors.NewChunkError(src.Name(), i, err)
			break
		}
		jobs <- extractJob{
			index:   i,
			data:    data,
			outPath: filepath.Join(a.config.OutputDir, fileutil.ChunkFilename(src.Name(), i, ".bin")),
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	<-resultDone

	if produceErr != nil {
		return res, produceErr
	}
	return res, resultErr
}

// extractChunk は1チャンクを必要に応じて展開して書き出します
func (a *App) extractChunk(job extractJob, decompress bool) extractResult {
	r := extractResult{index: job.index, path: job.outPath}

	data := job.data
	if decompress && yj1.IsCompressed(data) {
		raw, err := yj1.Decompress(data)
		if err != nil {
			r.err = err
			return r
		}
		data = raw
	}
	if a.config.DryRun {
		return r
	}
	if err := a.fs.WriteFile(job.outPath, data, 0644); err != nil {
		r.err = fmt.Errorf("%w: %w", fileutil.ErrCreateFile, err)
	}
	return r
}
