package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mofmt/internal/config"
	"mofmt/internal/diagfmt"
	"mofmt/internal/doc"
	"mofmt/internal/driver"
	"mofmt/internal/format"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.mo",
	Short: "Dump the tokens of a source file",
	Long: `Tokenize shows how mofmt sees a file: its tokens, the token tree built from
them, or the layout document the printer works on.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("tree", false, "print the token tree instead of the flat token list")
	tokenizeCmd.Flags().Bool("doc", false, "print the layout document")
	tokenizeCmd.Flags().Bool("normalized", false, "run the normalizer before tokenizing")
	registerOptionFlags(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	filePath := args[0]

	// Получаем флаги
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	showDoc, err := cmd.Flags().GetBool("doc")
	if err != nil {
		return fmt.Errorf("failed to get doc flag: %w", err)
	}
	normalized, err := cmd.Flags().GetBool("normalized")
	if err != nil {
		return fmt.Errorf("failed to get normalized flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	useColor, err := readColorFlag(cmd)
	if err != nil {
		return err
	}
	overrides, err := readOverrides(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.NewResolver().For(filePath)
	if err != nil {
		return err
	}
	opts := overrides.Apply(cfg.Apply(format.DefaultOptions()))

	if showDoc {
		return printDoc(cmd, filePath, opts)
	}

	result, err := driver.Tokenize(filePath, normalized, opts, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	if showTree {
		if result.Tree == nil {
			return &exitError{code: 2}
		}
		return diagfmt.FormatTree(out, result.Tree)
	}
	switch outputFormat {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
}

func printDoc(cmd *cobra.Command, path string, opts format.Options) error {
	// #nosec G304 -- path comes from the command line
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	d, err := format.Document(string(content), opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Debug(d))
	return err
}
