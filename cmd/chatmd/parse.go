package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/json"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the parsed segments of an answer as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			text := string(data)
			if live {
				text += chatmd.Sentinel
			}
			out, err := json.MarshalParsed(a.cfg.ReasoningMarkers().Parse(text))
			if err != nil {
				return fmt.Errorf("marshal: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "parse as a mid-stream snapshot with the cursor at the end")
	return cmd
}
