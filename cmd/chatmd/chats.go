package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/chatmd"
	bt "github.com/fwojciec/chatmd/bubbletea"
	"github.com/spf13/cobra"
)

func newChatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Manage saved chats",
	}
	cmd.AddCommand(
		newChatsListCmd(a),
		newChatsShowCmd(a),
		newChatsOpenCmd(a),
		newChatsDeleteCmd(a),
	)
	return cmd
}

func newChatsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved chats, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chats, err := a.store().ListChats(cmd.Context())
			if err != nil {
				return fmt.Errorf("list chats: %w", err)
			}
			if len(chats) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no saved chats")
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMESSAGES\tUPDATED")
			for _, c := range chats {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, c.Name, len(c.Messages), c.UpdatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newChatsShowCmd(a *app) *cobra.Command {
	var reasoning bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := a.store().FindChat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.transcript(reasoning).chat(chat))
			return err
		},
	}
	cmd.Flags().BoolVarP(&reasoning, "reasoning", "r", false, "expand reasoning sections")
	return cmd
}

func newChatsOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Browse a saved chat in the TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := a.store().FindChat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = a.runTUI(cmd.Context(), bt.New(bt.Config{
				Chat:      &chat,
				Markers:   a.cfg.ReasoningMarkers(),
				Theme:     chatmd.DefaultTheme(),
				CodeStyle: a.cfg.Render.CodeStyle,
				Logger:    a.logger,
			}))
			return err
		},
	}
}

func newChatsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().DeleteChat(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.logger.Info("chat deleted", "id", args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}
