package extract

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"cxxtract/internal/config"
	xerrors "cxxtract/internal/errors"
	"cxxtract/internal/model"
	"cxxtract/internal/parser"
	"cxxtract/internal/paths"
	"cxxtract/internal/slogutil"
)

// Extractor drives per-file extraction across files and directory trees.
// It holds no mutable state between files; a single Extractor may be used
// for any number of runs.
type Extractor struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates an extractor. A nil config gets defaults; a nil logger discards.
func New(cfg *config.Config, logger *slog.Logger) *Extractor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

func (e *Extractor) options() Options {
	return Options{
		IncludeDeclarations: e.cfg.Extraction.IncludeDeclarations,
		ExternCDeclarations: e.cfg.Extraction.ExternCDeclarations,
		NormalizeDocstrings: e.cfg.Extraction.NormalizeDocstrings,
	}
}

// ExtractFile extracts all entities from a single C++ source file.
// repoRoot defaults to the file's parent directory when empty. Fails fast on
// a non-C++ extension or an empty repo name; syntax errors never fail.
func (e *Extractor) ExtractFile(ctx context.Context, filePath, repoName, repoRoot string) ([]model.ExtractedEntity, error) {
	p := parser.New()
	result, err := e.extractFileWith(ctx, p, filePath, repoName, repoRoot)
	if err != nil {
		return nil, err
	}
	return result.Entities, nil
}

// extractFileWith runs one file through an existing parser and returns the
// per-file diagnostics.
func (e *Extractor) extractFileWith(ctx context.Context, p *parser.Parser, filePath, repoName, repoRoot string) (FileResult, error) {
	if repoName == "" {
		return FileResult{}, xerrors.Newf(xerrors.InvalidInput, "repo name must not be empty")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return FileResult{}, xerrors.New(xerrors.InvalidInput, "cannot resolve path", err).WithPath(filePath)
	}

	if !e.cfg.Extraction.HasExtension(filepath.Ext(absPath)) {
		return FileResult{}, xerrors.Newf(xerrors.InvalidInput,
			"not a C++ source file (extensions: %v)", e.cfg.Extraction.Extensions).WithPath(filePath)
	}

	if repoRoot == "" {
		repoRoot = filepath.Dir(absPath)
	} else if repoRoot, err = filepath.Abs(repoRoot); err != nil {
		return FileResult{}, xerrors.New(xerrors.InvalidInput, "cannot resolve repo root", err).WithPath(repoRoot)
	}

	relPath, err := paths.Canonicalize(absPath, repoRoot)
	if err != nil {
		e.logger.Warn("cannot compute repo-relative path, using absolute",
			"file", absPath, "repoRoot", repoRoot)
		relPath = paths.Normalize(absPath)
	}

	tree, source, err := p.ParseFile(ctx, absPath)
	if err != nil {
		return FileResult{}, err
	}

	errorNodes := parser.CountErrorNodes(tree)
	if errorNodes > 0 {
		e.logger.Warn("file contains syntax errors",
			"file", relPath, "errorNodes", errorNodes)
	}

	result := ExtractTree(tree, source, repoName, relPath, e.options(), e.logger)
	result.ParseErrors += errorNodes

	e.logger.Info("extracted file",
		"file", relPath, "entities", len(result.Entities), "parseErrors", result.ParseErrors)
	return result, nil
}

// DiscoverFiles recursively finds C++ source files under root, skipping
// excluded directory names. The returned absolute paths are sorted by their
// repo-relative forward-slash path so runs over an unchanged tree process
// files in a stable order.
func (e *Extractor) DiscoverFiles(root, repoRoot string) ([]string, error) {
	type discovered struct {
		abs string
		rel string
	}
	var files []discovered

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && e.cfg.Extraction.IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !e.cfg.Extraction.HasExtension(filepath.Ext(path)) {
			return nil
		}
		rel, err := paths.Canonicalize(path, repoRoot)
		if err != nil {
			rel = paths.Normalize(path)
		}
		files = append(files, discovered{abs: path, rel: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })

	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.abs
	}
	e.logger.Info("discovered C++ files", "root", root, "count", len(out))
	return out, nil
}

// ExtractDirectory extracts entities from every C++ file under root.
// Entities come back in lexicographic repo-relative file order, source order
// within each file; two runs over an unchanged tree produce byte-identical
// streams. Failing files are counted (and skipped) unless ContinueOnError is
// off, in which case the first failure aborts the run.
func (e *Extractor) ExtractDirectory(ctx context.Context, root, repoName, repoRoot string) ([]model.ExtractedEntity, model.ExtractionStats, error) {
	stats := model.ExtractionStats{}

	if repoName == "" {
		return nil, stats, xerrors.Newf(xerrors.InvalidInput, "repo name must not be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, stats, xerrors.New(xerrors.InvalidInput, "cannot resolve directory", err).WithPath(root)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, stats, xerrors.New(xerrors.FileNotFound, "directory not found", err).WithPath(root)
	}

	if repoRoot == "" {
		repoRoot = absRoot
	} else if repoRoot, err = filepath.Abs(repoRoot); err != nil {
		return nil, stats, xerrors.New(xerrors.InvalidInput, "cannot resolve repo root", err).WithPath(repoRoot)
	}

	files, err := e.DiscoverFiles(absRoot, repoRoot)
	if err != nil {
		return nil, stats, xerrors.New(xerrors.ReadError, "directory walk failed", err).WithPath(absRoot)
	}
	if len(files) == 0 {
		e.logger.Warn("no C++ files found", "root", absRoot)
		return nil, stats, nil
	}

	results := make([]*FileResult, len(files))
	failed := make([]bool, len(files))

	workers := e.cfg.Extraction.Workers
	if workers < 1 {
		workers = 1
	}
	continueOnError := e.cfg.Extraction.ContinueOnError

	g, gctx := errgroup.WithContext(ctx)
	indexes := make(chan int)

	g.Go(func() error {
		defer close(indexes)
		for i := range files {
			select {
			case indexes <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// One parser per worker; a parser is single-goroutine-owned.
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			p := parser.New()
			for i := range indexes {
				result, err := e.extractFileWith(gctx, p, files[i], repoName, repoRoot)
				if err != nil {
					e.logger.Error("failed to extract file", "file", files[i], "error", err)
					failed[i] = true
					if !continueOnError {
						return err
					}
					continue
				}
				r := result
				results[i] = &r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	// Deterministic merge in sorted file order.
	var all []model.ExtractedEntity
	for i := range files {
		if failed[i] {
			stats.FilesFailed++
			continue
		}
		if results[i] == nil {
			continue
		}
		stats.FilesProcessed++
		stats.EntitiesExtracted += len(results[i].Entities)
		stats.ParseErrors += results[i].ParseErrors
		all = append(all, results[i].Entities...)
	}

	e.logger.Info("extraction complete",
		"processed", stats.FilesProcessed, "failed", stats.FilesFailed,
		"entities", stats.EntitiesExtracted, "parseErrors", stats.ParseErrors)
	return all, stats, nil
}

// ExtractToMapList extracts from a file or directory and returns uniform
// key/value records ready for JSON serialization or database insertion.
func (e *Extractor) ExtractToMapList(ctx context.Context, source, repoName, repoRoot string) ([]map[string]any, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, xerrors.New(xerrors.InvalidInput, "cannot resolve source", err).WithPath(source)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, xerrors.New(xerrors.FileNotFound, "source not found", err).WithPath(source)
	}

	var entities []model.ExtractedEntity
	if info.IsDir() {
		var stats model.ExtractionStats
		entities, stats, err = e.ExtractDirectory(ctx, abs, repoName, repoRoot)
		if err != nil {
			return nil, err
		}
		e.logger.Info("extraction stats", "stats", stats.String())
	} else {
		entities, err = e.ExtractFile(ctx, abs, repoName, repoRoot)
		if err != nil {
			return nil, err
		}
	}

	out := make([]map[string]any, len(entities))
	for i := range entities {
		out[i] = entities[i].ToMap()
	}
	return out, nil
}
