package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/anthropic"
	bt "github.com/fwojciec/chatmd/bubbletea"
	"github.com/fwojciec/chatmd/replay"
	"github.com/spf13/cobra"
)

// Recording formats accepted by the replay command.
const (
	formatAuto = "auto"
	formatText = "text"
	formatSSE  = "sse"
)

type replayOptions struct {
	rate     float64
	chunk    int
	format   string
	save     bool
	appendTo string
	prompt   string
	name     string
}

func newReplayCmd(a *app) *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Stream a recorded answer through the TUI",
		Long: `Replay plays a recording back as if a model were streaming it.

Text recordings hold raw model output, reasoning markers included, and are
delivered a few runes at a time. SSE recordings hold a captured Anthropic
Messages API event stream; extended thinking is framed with the reasoning
markers. Files ending in .sse are treated as SSE unless --format says
otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rate") {
				opts.rate = a.cfg.Replay.Rate
			}
			if !cmd.Flags().Changed("chunk") {
				opts.chunk = a.cfg.Replay.Chunk
			}
			return a.replay(cmd.Context(), args[0], opts)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&opts.rate, "rate", replay.DefaultRate, "chunks per second (0 for no pacing)")
	f.IntVar(&opts.chunk, "chunk", replay.DefaultChunk, "runes per chunk for text recordings")
	f.StringVar(&opts.format, "format", formatAuto, "recording format: auto, text or sse")
	f.BoolVar(&opts.save, "save", false, "save the replayed exchange as a new chat")
	f.StringVar(&opts.appendTo, "append", "", "show the saved chat with this ID above the answer and append the exchange to it")
	f.StringVar(&opts.prompt, "prompt", "", "user message shown above the answer")
	f.StringVar(&opts.name, "name", "", "name of the saved chat (default: file name)")
	return cmd
}

func (a *app) replay(ctx context.Context, path string, opts replayOptions) error {
	format, err := recordingFormat(path, opts.format)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("recording: %w", err)
	}

	markers := a.cfg.ReasoningMarkers()
	pacing := []replay.Option{replay.WithRate(opts.rate), replay.WithChunk(opts.chunk)}
	open := func(ctx context.Context) (chatmd.Stream, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		if format == formatSSE {
			return replay.Wrap(ctx, anthropic.NewStream(ctx, f, markers), pacing...), nil
		}
		return replay.NewText(ctx, f, pacing...), nil
	}

	if opts.save && opts.appendTo != "" {
		return fmt.Errorf("--save and --append are mutually exclusive: %w", chatmd.ErrValidation)
	}
	var chat chatmd.Chat
	if opts.appendTo != "" {
		if chat, err = a.store().FindChat(ctx, opts.appendTo); err != nil {
			return err
		}
	}
	var exchange []chatmd.Message
	if opts.prompt != "" {
		exchange = append(exchange, chatmd.Message{Role: chatmd.RoleUser, Content: opts.prompt})
	}
	history := chat
	history.Messages = append(slices.Clone(chat.Messages), exchange...)

	a.logger.Info("replay started", "path", path, "format", format, "rate", opts.rate, "chunk", opts.chunk)
	final, err := a.runTUI(ctx, bt.New(bt.Config{
		Chat:      &history,
		Stream:    open,
		Markers:   markers,
		Theme:     chatmd.DefaultTheme(),
		CodeStyle: a.cfg.Render.CodeStyle,
		Logger:    a.logger,
	}))
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if final.Err() != nil {
		a.logger.Warn("replay ended with error", "error", final.Err())
	}
	if !opts.save && opts.appendTo == "" {
		return final.Err()
	}
	if final.Answer() == "" {
		if final.Err() != nil {
			return fmt.Errorf("nothing to save: %w", final.Err())
		}
		return errors.New("nothing to save: empty answer")
	}
	exchange = append(exchange, chatmd.Message{Role: chatmd.RoleAssistant, Content: final.Answer()})

	if opts.appendTo != "" {
		for i := range exchange {
			if err := a.store().AppendMessage(ctx, chat.ID, &exchange[i]); err != nil {
				return fmt.Errorf("append message: %w", err)
			}
		}
		a.logger.Info("chat updated", "id", chat.ID, "appended", len(exchange))
		fmt.Fprintf(a.errOut, "updated chat %s\n", chat.ID)
		return final.Err()
	}

	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	saved := &chatmd.Chat{Name: name, Model: "replay:" + format, Messages: exchange}
	if err := a.store().CreateChat(ctx, saved); err != nil {
		return fmt.Errorf("save chat: %w", err)
	}
	a.logger.Info("chat saved", "id", saved.ID, "messages", len(saved.Messages))
	fmt.Fprintf(a.errOut, "saved chat %s\n", saved.ID)
	return final.Err()
}

// recordingFormat resolves the format flag against the file extension.
func recordingFormat(path, format string) (string, error) {
	switch format {
	case formatText, formatSSE:
		return format, nil
	case formatAuto, "":
		if strings.EqualFold(filepath.Ext(path), ".sse") {
			return formatSSE, nil
		}
		return formatText, nil
	default:
		return "", fmt.Errorf("unknown format %q: %w", format, chatmd.ErrValidation)
	}
}
