package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mofmt/internal/config"
	"mofmt/internal/format"
)

// registerOptionFlags adds the formatting options to cmd. Their values
// only apply when given explicitly, so config files keep working.
func registerOptionFlags(cmd *cobra.Command) {
	defaults := format.DefaultOptions()
	flags := cmd.Flags()
	flags.Int("tab-width", defaults.TabWidth, "spaces per indentation level")
	flags.Int("print-width", defaults.PrintWidth, "line width the printer tries to stay within")
	flags.Bool("no-semi", false, "do not add missing semicolons")
	flags.Bool("no-bracket-spacing", false, "print { a } as {a}")
	flags.String("trailing-comma", string(defaults.TrailingComma), "trailing commas in broken groups (all|es5|none)")
	flags.Bool("sort-imports", false, "sort runs of adjacent imports")
	flags.Bool("remove-lines-around-code-blocks", false, "accepted for prettier compatibility; has no effect")
}

// readOverrides collects the option flags the user actually set.
func readOverrides(cmd *cobra.Command) (config.Overrides, error) {
	flags := cmd.Flags()
	var o config.Overrides

	intFlag := func(name string, dst **int) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = &v
		return nil
	}
	boolFlag := func(name string, negate bool, dst **bool) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		if negate {
			v = !v
		}
		*dst = &v
		return nil
	}

	if err := intFlag("tab-width", &o.TabWidth); err != nil {
		return o, err
	}
	if err := intFlag("print-width", &o.PrintWidth); err != nil {
		return o, err
	}
	if err := boolFlag("no-semi", true, &o.Semi); err != nil {
		return o, err
	}
	if err := boolFlag("no-bracket-spacing", true, &o.BracketSpacing); err != nil {
		return o, err
	}
	if err := boolFlag("sort-imports", false, &o.SortImports); err != nil {
		return o, err
	}
	if err := boolFlag("remove-lines-around-code-blocks", false, &o.RemoveLinesAroundCodeBlocks); err != nil {
		return o, err
	}
	if flags.Changed("trailing-comma") {
		v, err := flags.GetString("trailing-comma")
		if err != nil {
			return o, fmt.Errorf("failed to get trailing-comma flag: %w", err)
		}
		o.TrailingComma = &v
	}
	return o, nil
}
