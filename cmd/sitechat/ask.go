package main

import (
	"fmt"

	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/chat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Session.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	printAnswer(deps, answer)
	return nil
}

// printAnswer writes the answer text followed by its sources.
func printAnswer(deps *Dependencies, answer *chat.Answer) {
	fmt.Fprintln(deps.Stdout, answer.Text)
	for i, url := range answer.Sources {
		if i == 0 {
			fmt.Fprintln(deps.Stdout, "\nSources:")
		}
		fmt.Fprintf(deps.Stdout, "  [%d] %s\n", i+1, url)
	}
}
