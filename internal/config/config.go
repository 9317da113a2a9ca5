package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"mofmt/internal/diag"
	"mofmt/internal/format"
	"mofmt/internal/source"
)

// FileName is the configuration file looked up next to formatted sources.
const FileName = ".mofmt.toml"

// settings is the on-disk layout. Key names follow the prettier options.
type settings struct {
	TabWidth                    int      `toml:"tabWidth"`
	PrintWidth                  int      `toml:"printWidth"`
	Semi                        bool     `toml:"semi"`
	BracketSpacing              bool     `toml:"bracketSpacing"`
	TrailingComma               string   `toml:"trailingComma"`
	SortImports                 bool     `toml:"sortImports"`
	RemoveLinesAroundCodeBlocks bool     `toml:"removeLinesAroundCodeBlocks"`
	Exclude                     []string `toml:"exclude"`
}

// Config is one parsed configuration file. Only the keys present in the
// file override the options it is applied to.
type Config struct {
	Path    string
	Dir     string
	Exclude []string
	Unknown []string

	values settings
	meta   toml.MetaData
}

// Error reports a configuration file that could not be read or parsed.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Diagnostic converts the error into a diag record without a location.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.CfgParseError, source.Span{File: source.NoFile}, e.Error())
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the configuration file at path.
func Load(path string) (*Config, error) {
	var values settings
	meta, err := toml.DecodeFile(path, &values)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return newConfig(path, values, meta), nil
}

// Parse decodes configuration text; path is only used for messages and
// relative exclude patterns.
func Parse(path, text string) (*Config, error) {
	var values settings
	meta, err := toml.Decode(text, &values)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return newConfig(path, values, meta), nil
}

func newConfig(path string, values settings, meta toml.MetaData) *Config {
	cfg := &Config{
		Path:    path,
		Dir:     filepath.Dir(path),
		Exclude: values.Exclude,
		values:  values,
		meta:    meta,
	}
	for _, key := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	sort.Strings(cfg.Unknown)
	return cfg
}

// Apply overrides opts with every key defined in the file. A nil Config
// returns opts unchanged.
func (c *Config) Apply(opts format.Options) format.Options {
	if c == nil {
		return opts
	}
	v := c.values
	if c.meta.IsDefined("tabWidth") {
		opts.TabWidth = v.TabWidth
	}
	if c.meta.IsDefined("printWidth") {
		opts.PrintWidth = v.PrintWidth
	}
	if c.meta.IsDefined("semi") {
		opts.Semi = v.Semi
	}
	if c.meta.IsDefined("bracketSpacing") {
		opts.BracketSpacing = v.BracketSpacing
	}
	if c.meta.IsDefined("trailingComma") {
		opts.TrailingComma = format.TrailingComma(v.TrailingComma)
	}
	if c.meta.IsDefined("sortImports") {
		opts.SortImports = v.SortImports
	}
	if c.meta.IsDefined("removeLinesAroundCodeBlocks") {
		opts.RemoveLinesAroundCodeBlocks = v.RemoveLinesAroundCodeBlocks
	}
	return opts
}

// Excluded reports whether file matches one of the exclude patterns.
// Patterns are slash separated and relative to the config directory; a
// pattern matches the relative path, any of its parent directories or
// the base name.
func (c *Config) Excluded(file string) bool {
	if c == nil || len(c.Exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(c.Dir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		pattern = strings.TrimSuffix(strings.TrimPrefix(pattern, "./"), "/")
		if pattern == "" {
			continue
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
		for p := rel; p != "." && p != "/"; p = path.Dir(p) {
			if ok, _ := path.Match(pattern, p); ok {
				return true
			}
		}
	}
	return false
}

// Diagnostics returns warnings for keys the formatter does not know.
func (c *Config) Diagnostics() []diag.Diagnostic {
	if c == nil {
		return nil
	}
	out := make([]diag.Diagnostic, 0, len(c.Unknown))
	for _, key := range c.Unknown {
		out = append(out, diag.New(diag.SevWarning, diag.CfgUnknownKey,
			source.Span{File: source.NoFile},
			fmt.Sprintf("%s: unknown key %q", c.Path, key)))
	}
	return out
}

// Overrides holds option values given on the command line. Nil fields
// leave the configured value alone.
type Overrides struct {
	TabWidth                    *int
	PrintWidth                  *int
	Semi                        *bool
	BracketSpacing              *bool
	TrailingComma               *string
	SortImports                 *bool
	RemoveLinesAroundCodeBlocks *bool
}

// Apply overrides opts with every non-nil field.
func (o Overrides) Apply(opts format.Options) format.Options {
	if o.TabWidth != nil {
		opts.TabWidth = *o.TabWidth
	}
	if o.PrintWidth != nil {
		opts.PrintWidth = *o.PrintWidth
	}
	if o.Semi != nil {
		opts.Semi = *o.Semi
	}
	if o.BracketSpacing != nil {
		opts.BracketSpacing = *o.BracketSpacing
	}
	if o.TrailingComma != nil {
		opts.TrailingComma = format.TrailingComma(*o.TrailingComma)
	}
	if o.SortImports != nil {
		opts.SortImports = *o.SortImports
	}
	if o.RemoveLinesAroundCodeBlocks != nil {
		opts.RemoveLinesAroundCodeBlocks = *o.RemoveLinesAroundCodeBlocks
	}
	return opts
}

// Resolver finds and caches the configuration that applies to each
// directory. It is safe for concurrent use.
type Resolver struct {
	// Disabled skips the file lookup; only defaults and overrides apply.
	Disabled bool

	mu    sync.Mutex
	byDir map[string]resolved
	files map[string]resolved
}

type resolved struct {
	cfg *Config
	err error
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		byDir: make(map[string]resolved),
		files: make(map[string]resolved),
	}
}

// For returns the configuration governing file, or nil when there is none.
func (r *Resolver) For(file string) (*Config, error) {
	if r.Disabled {
		return nil, nil
	}
	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.byDir[dir]; ok {
		return res.cfg, res.err
	}
	cfgPath, ok, err := Find(dir)
	var res resolved
	switch {
	case err != nil:
		res.err = err
	case !ok:
	default:
		// один файл конфигурации на много каталогов парсим один раз
		cached, seen := r.files[cfgPath]
		if !seen {
			cached.cfg, cached.err = Load(cfgPath)
			r.files[cfgPath] = cached
		}
		res = cached
	}
	r.byDir[dir] = res
	return res.cfg, res.err
}

// Configs returns every configuration file loaded so far, sorted by path.
func (r *Resolver) Configs() []*Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Config, 0, len(r.files))
	for _, res := range r.files {
		if res.cfg != nil {
			out = append(out, res.cfg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
