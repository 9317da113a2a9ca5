package driver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"

	"mofmt/internal/config"
	"mofmt/internal/diag"
	"mofmt/internal/format"
	"mofmt/internal/source"
)

var noSpan = source.Span{File: source.NoFile}

// Diagnose converts results into diagnostics on bag. Files a diagnostic
// points into are registered in fs, so renderers can show source context.
// In check mode every changed file gets a FmtNeedsFormatting warning at
// its first differing byte.
func Diagnose(results []FormatResult, mode Mode, bag *diag.Bag, fs *source.FileSet) {
	inert := make(map[string]struct{})
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			bag.Add(ErrorDiagnostic(fs, r.Path, r.Source, r.Options, r.Err))
			continue
		}
		for _, name := range r.Options.InertOptions() {
			inert[name] = struct{}{}
		}
		if mode == ModeCheck && r.Changed {
			bag.Add(needsFormatting(fs, r))
		}
	}

	names := make([]string, 0, len(inert))
	for name := range inert {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		bag.Add(diag.New(diag.SevWarning, diag.FmtInertOption, noSpan,
			fmt.Sprintf("option %s is accepted but has no effect", name)))
	}
}

// ConfigDiagnostics returns warnings for every config file the resolver
// has loaded.
func ConfigDiagnostics(r *config.Resolver) []diag.Diagnostic {
	if r == nil {
		return nil
	}
	var out []diag.Diagnostic
	for _, cfg := range r.Configs() {
		out = append(out, cfg.Diagnostics()...)
	}
	return out
}

// ErrorDiagnostic converts an error from formatting path into a diagnostic.
// Parse errors are located in the normalized text of src, which is added
// to fs under path.
func ErrorDiagnostic(fs *source.FileSet, path string, src []byte, opts format.Options, err error) diag.Diagnostic {
	var (
		parseErr    *format.ParseError
		internalErr *format.InternalError
		configErr   *format.ConfigError
		fileCfgErr  *config.Error
		ioErr       *IOError
		idemErr     *NotIdempotentError
	)
	switch {
	case errors.As(err, &parseErr):
		return parseDiagnostic(fs, path, src, opts, parseErr)

	case errors.As(err, &configErr):
		d := configErr.Diagnostic()
		d.Message = path + ": " + d.Message
		return d

	case errors.As(err, &fileCfgErr):
		return fileCfgErr.Diagnostic()

	case errors.As(err, &internalErr):
		return diag.NewError(diag.FmtInternal, noSpan, path+": "+internalErr.Error())

	case errors.As(err, &ioErr):
		code := diag.IOLoadFileError
		if ioErr.Op == "write" {
			code = diag.IOWriteFileError
		}
		return diag.NewError(code, noSpan, ioErr.Error())

	case errors.As(err, &idemErr):
		return diag.NewError(diag.FmtNotIdempotent, noSpan, path+": "+idemErr.Error())
	}
	return diag.NewError(diag.UnknownCode, noSpan, path+": "+err.Error())
}

func parseDiagnostic(fs *source.FileSet, path string, src []byte, opts format.Options, pe *format.ParseError) diag.Diagnostic {
	text, err := format.Normalized(string(src), opts)
	if err != nil {
		return diag.NewError(pe.Code, noSpan, fmt.Sprintf("%s: %s", path, pe.Error()))
	}
	id := fs.Add(path, []byte(text), source.FileVirtual)
	sp := pe.Span
	sp.File = id
	d := diag.NewError(pe.Code, sp, pe.Msg)
	// хвостовые пробелы позиций не сдвигают
	if !strings.HasPrefix(string(src), text) {
		d = d.WithNote(noSpan, "positions refer to the normalized source")
	}
	return d
}

func needsFormatting(fs *source.FileSet, r *FormatResult) diag.Diagnostic {
	off := firstDiffOffset(r.Source, r.Formatted)
	start, err := safecast.Conv[uint32](max(off, 0))
	if err != nil {
		return diag.New(diag.SevWarning, diag.FmtNeedsFormatting, noSpan, r.Path+": file is not formatted")
	}
	id := fs.Add(r.Path, r.Source, 0)
	end := start
	if line := fs.Get(id).GetLine(fs.Get(id).Position(start).Line); line != "" {
		// подчёркиваем остаток строки, начиная с первого расхождения
		col := fs.Get(id).Position(start).Col
		rest, convErr := safecast.Conv[uint32](len(line))
		if convErr == nil && rest >= col {
			end = start + rest - col + 1
		}
	}
	return diag.New(diag.SevWarning, diag.FmtNeedsFormatting,
		source.Span{File: id, Start: start, End: end}, "file is not formatted")
}
