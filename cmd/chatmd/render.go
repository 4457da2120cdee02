package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var reasoning bool
	cmd := &cobra.Command{
		Use:   "render [pattern...]",
		Short: "Render complete answers to stdout",
		Long: `Render reads complete model answers and prints them as the TUI would
show them once streaming has finished. Patterns support ** globbing.
With no patterns the answer is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := a.transcript(reasoning)
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), t.answer(string(data)))
				return err
			}

			files, err := expandPatterns(args)
			if err != nil {
				return err
			}
			for i, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				a.logger.Debug("rendering file", "path", path, "bytes", len(data))
				if len(files) > 1 {
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout())
					}
					fmt.Fprintln(cmd.OutOrStdout(), t.styles.Accent.Render("==> "+path+" <=="))
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t.answer(string(data))); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&reasoning, "reasoning", "r", false, "expand reasoning sections")
	return cmd
}

// expandPatterns resolves glob patterns to a sorted, de-duplicated list of
// files. A pattern that matches nothing is an error.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
