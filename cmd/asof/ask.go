package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/asof"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	ans, err := deps.Answerer.Answer(deps.Ctx, query, c.Search)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", asof.ErrorMessage(err))
		return err
	}

	if ans.Notice != "" {
		fmt.Fprintln(deps.Stderr, ans.Notice)
	}

	if c.Pretty {
		out, err := pretty(ans.Text)
		if err != nil {
			return err
		}
		fmt.Fprint(deps.Stdout, out)
		return nil
	}

	reveal(deps.Stdout, ans.Text, c.Delay, deps.Sleep)
	fmt.Fprintln(deps.Stdout)
	return nil
}
