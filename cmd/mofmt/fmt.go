package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mofmt/internal/config"
	"mofmt/internal/diagfmt"
	"mofmt/internal/driver"
	"mofmt/internal/format"
	"mofmt/internal/observ"
	"mofmt/internal/pipeline"
	"mofmt/internal/ui"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format Motoko and Candid source files",
	Long: `Format rewrites .mo and .did files in place. Directories are walked
recursively. With no path, or with "-", the input is read from stdin and the
result is printed to stdout.

Options come from the nearest ` + config.FileName + ` file and can be overridden
with flags.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("diff", false, "print the changes as a diff instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|short|json)")
	fmtCmd.Flags().Bool("verify", false, "format every result a second time and fail when it changes")
	fmtCmd.Flags().Bool("no-cache", false, "do not use the result cache")
	fmtCmd.Flags().Bool("no-config", false, "ignore "+config.FileName+" files")
	fmtCmd.Flags().String("stdin-filepath", "", "path used for messages and config lookup when reading stdin")
	fmtCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	fmtCmd.Flags().Int("jobs", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	fmtCmd.Flags().String("path-mode", "auto", "how paths are shown in diagnostics (auto|absolute|relative|basename)")
	registerOptionFlags(fmtCmd)
}

// fmtSettings is everything runFmt reads from flags.
type fmtSettings struct {
	check          bool
	stdout         bool
	diff           bool
	outputFormat   string
	verify         bool
	noCache        bool
	noConfig       bool
	stdinPath      string
	ui             uiMode
	jobs           int
	pathMode       diagfmt.PathMode
	overrides      config.Overrides
	quiet          bool
	color          bool
	timings        bool
	maxDiagnostics int
}

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := readFmtSettings(cmd)
	if err != nil {
		return err
	}
	return executeFmt(cmd.Context(), s, args, streams{
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	})
}

func readFmtSettings(cmd *cobra.Command) (fmtSettings, error) {
	var s fmtSettings
	var err error
	flags := cmd.Flags()
	if s.check, err = flags.GetBool("check"); err != nil {
		return s, err
	}
	if s.stdout, err = flags.GetBool("stdout"); err != nil {
		return s, err
	}
	if s.diff, err = flags.GetBool("diff"); err != nil {
		return s, err
	}
	if s.outputFormat, err = flags.GetString("format"); err != nil {
		return s, err
	}
	if s.verify, err = flags.GetBool("verify"); err != nil {
		return s, err
	}
	if s.noCache, err = flags.GetBool("no-cache"); err != nil {
		return s, err
	}
	if s.noConfig, err = flags.GetBool("no-config"); err != nil {
		return s, err
	}
	if s.stdinPath, err = flags.GetString("stdin-filepath"); err != nil {
		return s, err
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, err
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return s, err
	}
	var ok bool
	if s.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return s, fmt.Errorf("invalid --path-mode value %q", pathMode)
	}
	if s.overrides, err = readOverrides(cmd); err != nil {
		return s, err
	}

	root := cmd.Root().PersistentFlags()
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return s, err
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, err
	}
	if s.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return s, err
	}
	if s.color, err = readColorFlag(cmd); err != nil {
		return s, err
	}
	return s, s.validate()
}

func (s fmtSettings) validate() error {
	switch s.outputFormat {
	case "text", "short", "json":
	default:
		return fmt.Errorf("fmt: unsupported output format %q", s.outputFormat)
	}
	if s.stdout && s.check {
		return errors.New("fmt: --stdout cannot be used with --check")
	}
	if s.stdout && s.diff {
		return errors.New("fmt: --stdout cannot be used with --diff")
	}
	if (s.stdout || s.diff) && s.outputFormat == "json" {
		return errors.New("fmt: --stdout and --diff are not supported with json output")
	}
	return nil
}

// mode maps the flags to a driver mode. Input from stdin is never written
// back, so write mode becomes stdout mode there.
func (s fmtSettings) mode(stdin bool) driver.Mode {
	switch {
	case s.check:
		return driver.ModeCheck
	case s.stdout, s.diff, stdin:
		return driver.ModeStdout
	}
	return driver.ModeWrite
}

func readsStdin(args []string) (bool, error) {
	if len(args) == 0 {
		return true, nil
	}
	for _, a := range args {
		if a == "-" {
			if len(args) > 1 {
				return false, errors.New("fmt: - cannot be combined with other paths")
			}
			return true, nil
		}
	}
	return false, nil
}

func executeFmt(ctx context.Context, s fmtSettings, args []string, std streams) error {
	stdin, err := readsStdin(args)
	if err != nil {
		return err
	}
	mode := s.mode(stdin)

	resolver := config.NewResolver()
	resolver.Disabled = s.noConfig
	opts := driver.FormatOptions{
		Mode:      mode,
		Base:      format.DefaultOptions(),
		Overrides: s.overrides,
		Config:    resolver,
		Verify:    s.verify,
		Jobs:      s.jobs,
	}
	if s.timings {
		opts.Timer = observ.NewTimer()
	}
	if !s.noCache {
		// без кэша всё работает, только медленнее
		if cache, cacheErr := driver.OpenCache("mofmt"); cacheErr == nil {
			opts.Cache = cache
		}
	}

	var results []driver.FormatResult
	if stdin {
		res, err := driver.FormatReader(ctx, std.in, s.stdinPath, opts)
		if err != nil {
			return err
		}
		results = []driver.FormatResult{res}
	} else {
		work := func(sink pipeline.ProgressSink) error {
			runOpts := opts
			runOpts.Progress = sink
			var runErr error
			results, runErr = driver.FormatPaths(ctx, args, runOpts)
			return runErr
		}
		if mode == driver.ModeWrite && s.outputFormat != "json" && shouldUseTUI(s.ui, s.quiet) {
			err = ui.Run(std.errOut, "Formatting", nil, work)
		} else {
			err = work(nil)
		}
		if errors.Is(err, driver.ErrNoSourceFiles) {
			return fmt.Errorf("fmt: no .mo or .did files in %s", strings.Join(args, ", "))
		}
		if err != nil {
			return err
		}
	}

	return reportFmt(s, mode, stdin, results, opts, std)
}

func reportFmt(s fmtSettings, mode driver.Mode, stdin bool, results []driver.FormatResult, opts driver.FormatOptions, std streams) error {
	report := newFmtReport(s, mode, results, opts)

	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		} else if res.Changed {
			hasChanges = true
		}
	}

	switch s.outputFormat {
	case "json":
		if err := report.writeJSON(std.out); err != nil {
			return err
		}
	default:
		switch {
		case s.diff:
			writeDiffs(std.out, results, report.baseDir)
		case mode == driver.ModeStdout:
			for _, res := range results {
				if res.Err == nil {
					_, _ = std.out.Write(res.Formatted)
				}
			}
		case !s.quiet:
			writeChangedPaths(std.out, results, mode, report.baseDir)
		}
		report.writeText(std.errOut)
		if s.timings {
			if stdin && len(results) == 1 {
				printStageTimings(std.errOut, results[0].Timings)
			} else if opts.Timer != nil {
				fmt.Fprint(std.errOut, opts.Timer.Summary())
			}
		}
	}

	if hasErrors {
		return &exitError{code: 2}
	}
	if mode == driver.ModeCheck && hasChanges {
		return &exitError{code: 1}
	}
	return nil
}

func writeChangedPaths(out io.Writer, results []driver.FormatResult, mode driver.Mode, baseDir string) {
	for _, res := range results {
		if res.Err != nil || !res.Changed {
			continue
		}
		path := pipeline.DisplayPath(res.Path, baseDir)
		var printErr error
		if mode == driver.ModeCheck {
			_, printErr = fmt.Fprintln(out, path)
		} else {
			_, printErr = fmt.Fprintf(out, "reformatted %s\n", path)
		}
		if printErr != nil {
			panic(printErr)
		}
	}
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
