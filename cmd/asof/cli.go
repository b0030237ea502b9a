package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/chat"
	"github.com/prometheus/client_golang/prometheus"
)

// Pinger checks that a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Answerer   asof.Answerer
	Controller *chat.Controller
	Renderer   asof.Renderer
	Gatherer   prometheus.Gatherer

	// Pinger is set when the completion backend supports health checks.
	Pinger Pinger

	// Sleep pauses between reveal steps. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Backend      string        `default:"ollama" enum:"ollama,gemini" env:"ASOF_BACKEND" help:"Completion backend (ollama or gemini)"`
	Model        string        `env:"ASOF_MODEL" help:"Model name (default depends on backend)"`
	OllamaURL    string        `name:"ollama-url" env:"OLLAMA_HOST" help:"Ollama server address"`
	GeminiAPIKey string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	DB           string        `name:"db" default:":memory:" env:"ASOF_DB" help:"SQLite database path for chat sessions"`
	SearchURL    string        `name:"search-url" help:"Search endpoint (DuckDuckGo HTML compatible)"`
	SearchRate   float64       `name:"search-rate" default:"1" help:"Search requests per second"`
	Timeout      time.Duration `default:"60s" help:"Timeout for each search and completion call"`
	LogLevel     string        `name:"log-level" help:"Log level (debug, info, warn, error)"`

	Ask   AskCmd   `cmd:"" help:"Answer a single question"`
	Chat  ChatCmd  `cmd:"" help:"Start an interactive chat"`
	Serve ServeCmd `cmd:"" help:"Serve the chat web UI"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Query  []string      `arg:"" help:"Question to answer"`
	Search bool          `short:"s" help:"Search the web before answering"`
	Delay  time.Duration `default:"0s" help:"Delay between revealed characters"`
	Pretty bool          `help:"Render the reply as formatted Markdown"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Search bool          `short:"s" help:"Start with web search enabled"`
	Delay  time.Duration `default:"0s" help:"Delay between revealed characters"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8501" help:"Listen address"`
}
