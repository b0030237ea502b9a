package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/asof"
	"github.com/fwojciec/asof/answer"
	"github.com/fwojciec/asof/chat"
	"github.com/fwojciec/asof/gemini"
	"github.com/fwojciec/asof/goldmark"
	"github.com/fwojciec/asof/goquery"
	"github.com/fwojciec/asof/htmltomarkdown"
	asofhttp "github.com/fwojciec/asof/http"
	"github.com/fwojciec/asof/ollama"
	asofprom "github.com/fwojciec/asof/prometheus"
	"github.com/fwojciec/asof/ratelimit"
	asofslog "github.com/fwojciec/asof/slog"
	"github.com/fwojciec/asof/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding chat sessions.
	DB *sqlite.DB

	// Fetcher used for web search. Closed by Close.
	Fetcher asof.Fetcher

	// Registry collects metrics exposed by the serve command.
	Registry *prometheus.Registry

	// Completer built for the selected backend, before logging decoration.
	Completer asof.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("asof"),
		kong.Description("A time-aware research assistant."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'asof --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level, err := parseLevel(cli.LogLevel, cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ASOF_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	completer, err := m.completer(ctx, cli, stderr, deps)
	if err != nil {
		return err
	}
	m.Completer = completer

	fetcher := asofhttp.NewFetcher()
	m.Fetcher = fetcher
	searcher := goquery.NewSearcher(
		asofslog.NewLoggingFetcher(fetcher, logger),
		ratelimit.NewDomainLimiter(cli.SearchRate),
		htmltomarkdown.NewConverter(),
	)
	if cli.SearchURL != "" {
		searcher.Endpoint = cli.SearchURL
	}

	pipeline := &answer.Pipeline{
		Searcher:  asofslog.NewLoggingSearcher(searcher, logger),
		Completer: asofslog.NewLoggingCompleter(completer, logger),
		Timeout:   cli.Timeout,
	}

	m.Registry = prometheus.NewRegistry()
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	answerer, err := asofprom.NewAnswerer(pipeline, m.Registry)
	if err != nil {
		return err
	}

	sessions := asofslog.NewLoggingSessionService(sqlite.NewSessionService(m.DB), logger)

	deps.Answerer = answerer
	deps.Controller = chat.NewController(answerer, sessions)
	deps.Renderer = goldmark.NewRenderer()
	deps.Gatherer = m.Registry

	return kongCtx.Run(deps)
}

func (m *Main) completer(ctx context.Context, cli *CLI, stderr io.Writer, deps *Dependencies) (asof.Completer, error) {
	switch cli.Backend {
	case "gemini":
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client, cli.Model), nil
	default:
		opts := []ollama.Option{ollama.WithModel(cli.Model), ollama.WithTimeout(cli.Timeout)}
		if cli.OllamaURL != "" {
			opts = append(opts, ollama.WithBaseURL(cli.OllamaURL))
		}
		c := ollama.NewCompleter(opts...)
		deps.Pinger = c
		return c, nil
	}
}

// parseLevel maps a --log-level value to a slog level. An empty value
// selects info for serve and warn for interactive commands.
func parseLevel(s, cmd string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "":
		if cmd == "serve" {
			return slog.LevelInfo, nil
		}
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, asof.Errorf(asof.EINVALID, "unknown log level %q", s)
	}
}
