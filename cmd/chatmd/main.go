// Command chatmd renders streamed LLM answers in the terminal: reasoning is
// split from the answer and collapsed once it ends, code fences render as
// code while they are still streaming, and a blinking cursor marks the live
// edge.
//
// Usage:
//
//	chatmd replay recording.txt       stream a recorded answer through the TUI
//	chatmd replay --save capture.sse  replay an SSE capture and keep the chat
//	chatmd render 'answers/**/*.md'   render files non-interactively
//	chatmd parse answer.txt           dump the parsed segments as JSON
//	chatmd chats list|show|open|delete
//
// Configuration is read from .chatmd.yaml in the working directory or the
// home directory, CHATMD_* environment variables and flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr))
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "chatmd: %v\n", err)
		stop()
		os.Exit(1)
	}
}
