package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/asof"
)

const chatHelp = "Commands: /search on|off, /clear, /quit"

// Run executes the chat command. Each input line is submitted as a message
// until /quit or end of input.
func (c *ChatCmd) Run(deps *Dependencies) error {
	session, err := deps.Controller.Start(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", asof.ErrorMessage(err))
		return err
	}
	defer func() {
		_ = deps.Controller.End(context.WithoutCancel(deps.Ctx), session.ID)
	}()

	search := c.Search
	fmt.Fprintln(deps.Stdout, "AI Research Assistant")
	fmt.Fprintln(deps.Stdout, chatHelp)
	printSearch(deps, search)

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/clear":
			if err := deps.Controller.Clear(deps.Ctx, session.ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", asof.ErrorMessage(err))
				continue
			}
			fmt.Fprintln(deps.Stdout, "Chat cleared.")
			continue
		case strings.HasPrefix(line, "/search"):
			switch strings.TrimSpace(strings.TrimPrefix(line, "/search")) {
			case "on":
				search = true
			case "off":
				search = false
			default:
				fmt.Fprintln(deps.Stderr, "usage: /search on|off")
				continue
			}
			printSearch(deps, search)
			continue
		case strings.HasPrefix(line, "/"):
			fmt.Fprintln(deps.Stderr, chatHelp)
			continue
		}

		ans, err := deps.Controller.Submit(deps.Ctx, session.ID, line, search)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", asof.ErrorMessage(err))
			continue
		}
		if ans.Notice != "" {
			fmt.Fprintln(deps.Stderr, ans.Notice)
		}
		reveal(deps.Stdout, ans.Text, c.Delay, deps.Sleep)
		fmt.Fprintln(deps.Stdout)
	}
}

func printSearch(deps *Dependencies, on bool) {
	if on {
		fmt.Fprintln(deps.Stdout, "Web search: on")
		return
	}
	fmt.Fprintln(deps.Stdout, "Web search: off")
}
