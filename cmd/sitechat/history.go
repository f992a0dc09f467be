package main

import (
	"fmt"

	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/fs"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.showTranscript(deps)
	}
	return c.listConversations(deps)
}

// showTranscript prints (or exports) one conversation.
func (c *HistoryCmd) showTranscript(deps *Dependencies) error {
	info, err := deps.Conversations.FindConversation(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	exchanges, err := deps.Conversations.Exchanges(deps.Ctx, c.ID)
	if err != nil {
		return err
	}

	if c.Export != "" {
		path, err := fs.NewTranscriptWriter(c.Export).WriteTranscript(info.ID, info.Domain, exchanges)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		return nil
	}

	fmt.Fprint(deps.Stdout, fs.FormatTranscript(info.ID, info.Domain, exchanges))
	return nil
}

// listConversations prints stored conversations, newest first. With
// --export every transcript is written out instead.
func (c *HistoryCmd) listConversations(deps *Dependencies) error {
	infos, err := deps.Conversations.ListConversations(deps.Ctx, 0, 0)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(deps.Stdout, "No stored conversations.")
		return nil
	}

	if c.Export != "" {
		writer := fs.NewTranscriptWriter(c.Export)
		for _, info := range infos {
			exchanges, err := deps.Conversations.Exchanges(deps.Ctx, info.ID)
			if err != nil {
				return err
			}
			path, err := writer.WriteTranscript(info.ID, info.Domain, exchanges)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		}
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d exchanges\n",
			info.ID, info.CreatedAt.Format("2006-01-02 15:04"), info.Domain, info.Exchanges)
	}
	return nil
}
