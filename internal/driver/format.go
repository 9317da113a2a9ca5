package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"mofmt/internal/config"
	"mofmt/internal/format"
	"mofmt/internal/observ"
	"mofmt/internal/pipeline"
	"mofmt/internal/trace"
)

// Mode selects what happens to a formatted file.
type Mode uint8

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports whether files would change.
	ModeCheck
	// ModeStdout returns formatted text without touching files.
	ModeStdout
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Mode Mode
	// Base is the starting option set; config files and Overrides apply on top.
	Base      format.Options
	Overrides config.Overrides
	// Config resolves .mofmt.toml files. Nil means a fresh resolver.
	Config *config.Resolver
	// Verify formats every output a second time and fails on any change.
	Verify bool
	// Jobs bounds concurrent workers; zero means GOMAXPROCS.
	Jobs int
	// Cache may be nil to disable caching.
	Cache *Cache
	// Progress receives per-file events; may be nil.
	Progress pipeline.ProgressSink
	// Timer accumulates per-stage durations; may be nil.
	Timer *observ.Timer
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	Cached  bool
	Err     error
	// Source and Formatted are kept for diagnostics and stdout mode.
	Source    []byte
	Formatted []byte
	Options   format.Options
	Timings   pipeline.Timings
}

// ErrNoSourceFiles is returned when the given paths hold no .mo or .did file.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatPaths formats provided files or directories (recursively collecting
// .mo and .did files). Results are sorted by path. Per-file failures are
// stored in FormatResult.Err; the returned error is reserved for problems
// that stop the whole run.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Config == nil {
		opts.Config = config.NewResolver()
	}

	span, ctx := trace.StartRun(ctx, "format")
	defer span.End("")

	collectIdx := opts.Timer.Begin("walk")
	files, err := collectSourceFiles(ctx, paths, opts.Config)
	opts.Timer.End(collectIdx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	span.SetFiles(len(files))
	pipeline.EmitQueued(opts.Progress, files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	formatIdx := opts.Timer.Begin("workers")
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	workers := min(jobs, len(files))
	g.SetLimit(workers)
	// номер слота становится дорожкой воркера в трассе
	slots := make(chan int, workers)
	for slot := 1; slot <= workers; slot++ {
		slots <- slot
	}
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FormatResult{Path: path, Err: err}
				return err
			}
			slot := <-slots
			defer func() { slots <- slot }()
			results[i] = formatFile(trace.WithWorker(gctx, slot), path, opts)
			return nil
		})
	}
	err = g.Wait()
	opts.Timer.End(formatIdx, fmt.Sprintf("%d jobs", jobs))

	for i := range results {
		for _, stage := range []pipeline.Stage{pipeline.StageRead, pipeline.StageFormat, pipeline.StageVerify, pipeline.StageWrite} {
			if results[i].Timings.Has(stage) {
				opts.Timer.Add(string(stage), results[i].Timings.Duration(stage))
			}
		}
	}
	if err != nil {
		return results, err
	}
	return results, nil
}

// FormatReader formats text read from r. name is used for messages and to
// find the applicable config file; it may be empty.
func FormatReader(ctx context.Context, r io.Reader, name string, opts FormatOptions) (FormatResult, error) {
	if opts.Config == nil {
		opts.Config = config.NewResolver()
	}
	if name == "" {
		name = "<stdin>"
	}
	result := FormatResult{Path: name}

	start := time.Now()
	data, err := io.ReadAll(r)
	result.Timings.Add(pipeline.StageRead, time.Since(start))
	if err != nil {
		return result, &IOError{Op: "read", Path: name, Err: err}
	}
	result.Source = data

	// конфиг ищется от каталога name; для stdin это текущий каталог
	if err := resolveOptions(&result, name, opts); err != nil {
		result.Err = err
		return result, nil
	}
	formatSource(ctx, &result, opts)
	return result, nil
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	span, ctx := trace.StartFile(ctx, path)
	result := FormatResult{Path: path}
	defer func() {
		status := pipeline.StatusDone
		switch {
		case result.Err != nil:
			status = pipeline.StatusError
		case result.Cached:
			status = pipeline.StatusCached
		case result.Changed:
			status = pipeline.StatusChanged
		}
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Status: status, Err: result.Err})
		span.End(string(status))
	}()

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	start := time.Now()
	// #nosec G304 -- path comes from the command line or a directory walk
	data, err := os.ReadFile(path)
	result.Timings.Add(pipeline.StageRead, time.Since(start))
	if err != nil {
		result.Err = &IOError{Op: "read", Path: path, Err: err}
		return result
	}
	result.Source = data
	span.SetBytes(len(data))

	if err := resolveOptions(&result, path, opts); err != nil {
		result.Err = err
		return result
	}
	formatSource(ctx, &result, opts)
	if result.Err != nil || !result.Changed || opts.Mode != ModeWrite {
		return result
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	start = time.Now()
	if err := writePreservingMode(path, result.Formatted); err != nil {
		result.Err = &IOError{Op: "write", Path: path, Err: err}
	}
	result.Timings.Add(pipeline.StageWrite, time.Since(start))
	return result
}

func resolveOptions(result *FormatResult, path string, opts FormatOptions) error {
	cfg, err := opts.Config.For(path)
	if err != nil {
		return err
	}
	result.Options = opts.Overrides.Apply(cfg.Apply(opts.Base))
	return nil
}

// formatSource fills Formatted, Changed and Cached from Source and Options.
func formatSource(ctx context.Context, result *FormatResult, opts FormatOptions) {
	var key Digest
	if opts.Cache != nil {
		key = CacheKey(result.Source, result.Options.Fingerprint())
		var payload CachePayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			result.Cached = true
			result.Changed = payload.Changed
			result.Formatted = payload.Formatted
			if !payload.Changed {
				result.Formatted = result.Source
			}
			trace.Mark(ctx, "cache-hit")
			return
		}
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: result.Path, Stage: pipeline.StageFormat, Status: pipeline.StatusWorking})
	start := time.Now()
	out, err := format.FormatContext(ctx, string(result.Source), result.Options)
	result.Timings.Add(pipeline.StageFormat, time.Since(start))
	if err != nil {
		result.Err = err
		return
	}

	if opts.Verify {
		pipeline.Emit(opts.Progress, pipeline.Event{File: result.Path, Stage: pipeline.StageVerify, Status: pipeline.StatusWorking})
		start = time.Now()
		err := verifyOutput(ctx, out, result.Options)
		result.Timings.Add(pipeline.StageVerify, time.Since(start))
		if err != nil {
			result.Err = err
			return
		}
	}

	result.Formatted = []byte(out)
	result.Changed = !bytes.Equal(result.Source, result.Formatted)

	if opts.Cache != nil {
		payload := &CachePayload{Changed: result.Changed}
		if result.Changed {
			payload.Formatted = result.Formatted
		}
		// кэш вспомогательный: ошибка записи не портит результат
		_ = opts.Cache.Put(key, payload)
	}
}

// writePreservingMode replaces path atomically, keeping its permissions.
func writePreservingMode(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".mofmt-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(mode.Perm()); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// collectSourceFiles expands paths into a sorted, deduplicated file list.
// Files found by walking a directory are dropped when their config
// excludes them; explicitly named files are always kept.
func collectSourceFiles(ctx context.Context, paths []string, resolver *config.Resolver) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, &IOError{Op: "read", Path: p, Err: err}
		}
		if !info.IsDir() {
			if format.HasSourceExt(p) {
				addFile(p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !format.HasSourceExt(path) {
				return nil
			}
			cfg, err := resolver.For(path)
			if err != nil {
				return err
			}
			if !cfg.Excluded(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// skipDir reports directories never worth walking: VCS metadata, hidden
// directories and dfx build output.
func skipDir(name string) bool {
	switch name {
	case ".git", ".hg", ".svn", ".dfx", ".mops", "node_modules":
		return true
	}
	return len(name) > 1 && name[0] == '.'
}
