package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/duna-akin/sitechat"
)

// Run executes the chat command: a read/ask loop that ends on "exit",
// "quit", or EOF.
func (c *ChatCmd) Run(deps *Dependencies) error {
	session := deps.Session

	if c.Resume != "" {
		if _, err := deps.Conversations.FindConversation(deps.Ctx, c.Resume); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}
		session.ID = c.Resume
		fmt.Fprintf(deps.Stdout, "Resuming conversation %s\n", c.Resume)
	}

	fmt.Fprintf(deps.Stdout, "Chatting about %s. Type 'exit' to quit.\n", session.Config.TargetDomain)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "\n> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := session.Ask(deps.Ctx, question)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			continue
		}

		fmt.Fprintln(deps.Stdout)
		printAnswer(deps, answer)
	}

	fmt.Fprintf(deps.Stdout, "\nConversation ID: %s (resume with --resume)\n", session.ID)
	return scanner.Err()
}
