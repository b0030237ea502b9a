package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/asof"
)

// reveal writes text to w one rune at a time, pausing delay between runes.
// A zero delay writes the text at once.
func reveal(w io.Writer, text string, delay time.Duration, sleep func(time.Duration)) {
	if delay <= 0 {
		fmt.Fprint(w, text)
		return
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	shown := 0
	for prefix := range asof.Reveal(text) {
		if len(prefix) == shown {
			continue
		}
		fmt.Fprint(w, prefix[shown:])
		shown = len(prefix)
		sleep(delay)
	}
}

// pretty renders markdown for a terminal.
func pretty(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
