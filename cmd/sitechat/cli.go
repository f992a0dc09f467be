package main

import (
	"context"
	"io"
	"time"

	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/chat"
	"github.com/duna-akin/sitechat/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Config        sitechat.Config
	Session       *chat.Session
	Conversations *sqlite.ConversationService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Domain string `short:"d" required:"" help:"Website domain to answer questions about (e.g. example.edu)"`

	MaxResults  int           `default:"3" help:"Search results to consider per query"`
	MaxDocs     int           `default:"4" help:"Pages to include in the answer context"`
	MaxContext  int           `default:"4000" help:"Character budget for the assembled context"`
	Timeout     time.Duration `default:"45s" help:"Deadline for one full question/answer cycle"`
	Concurrency int           `default:"4" help:"Concurrent page fetch limit"`
	RenderJS    bool          `name:"render-js" help:"Fetch pages with a headless browser (requires Chrome)"`
	Extractor   string        `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction engine"`
	Verbose     bool          `short:"v" help:"Log search and fetch activity"`

	Ask     AskCmd     `cmd:"" help:"Ask a single question about the site"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive conversation"`
	History HistoryCmd `cmd:"" help:"List or export stored conversations"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the site"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Resume string `help:"Resume a stored conversation by ID"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID     string `arg:"" optional:"" help:"Show one conversation's transcript"`
	Export string `help:"Write transcripts as markdown files to this directory"`
}
