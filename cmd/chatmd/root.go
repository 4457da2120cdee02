package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/chatmd"
	bt "github.com/fwojciec/chatmd/bubbletea"
	"github.com/fwojciec/chatmd/json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via ldflags.
var Version = "dev"

// app carries the state shared by all subcommands. It is filled in by the
// root command's pre-run hook once flags are parsed.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v       *viper.Viper
	cfgFile string
	cfg     Config
	logger  *slog.Logger
	logFile io.Closer

	// runTUI and openStore are replaced in tests.
	runTUI    func(ctx context.Context, m bt.Model) (bt.Model, error)
	openStore func(dir string) chatmd.ChatStore
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:        in,
		out:       out,
		errOut:    errOut,
		v:         viper.New(),
		logger:    slog.New(slog.DiscardHandler),
		runTUI:    bt.Run,
		openStore: openJSONStore,
	}
}

func openJSONStore(dir string) chatmd.ChatStore {
	return json.NewStore(dir)
}

func (a *app) store() chatmd.ChatStore {
	return a.openStore(a.cfg.Store.Dir)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatmd",
		Short: "Render streamed LLM answers with collapsible reasoning",
		Long: `chatmd renders model output in the terminal while it streams.

Reasoning wrapped in <think>...</think> is shown under a collapsible
"Thinking Process" header that folds away once the answer starts. Code
fences are highlighted as soon as they open, and a blinking cursor marks
the live edge of the stream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger, a.logFile = cfg, logger, closer
			a.logger.Debug("config loaded", "config", a.v.ConfigFileUsed(), "store", cfg.Store.Dir)
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logFile == nil {
				return nil
			}
			return a.logFile.Close()
		},
	}
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default: .chatmd.yaml in . or $HOME)")
	f.String("store-dir", "", "directory holding saved chats")
	f.Int("width", 80, "wrap width for non-interactive output")
	f.String("code-style", "", "chroma style for code blocks")
	f.String("open-marker", "", "marker opening the reasoning section")
	f.String("close-marker", "", "marker closing the reasoning section")
	f.String("log-file", "", "write diagnostic logs to this file")
	f.String("log-level", "", "log level: debug, info, warn, error")
	bindFlags(a.v, cmd)

	cmd.AddCommand(
		newReplayCmd(a),
		newRenderCmd(a),
		newParseCmd(a),
		newChatsCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "chatmd %s\n", Version)
			return err
		},
	}
}
