package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/chat"
	"github.com/duna-akin/sitechat/gemini"
	"github.com/duna-akin/sitechat/htmltomarkdown"
	sitehttp "github.com/duna-akin/sitechat/http"
	"github.com/duna-akin/sitechat/readability"
	"github.com/duna-akin/sitechat/retrieve"
	"github.com/duna-akin/sitechat/rod"
	sitechatslog "github.com/duna-akin/sitechat/slog"
	"github.com/duna-akin/sitechat/sqlite"
	"github.com/duna-akin/sitechat/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database holding conversation history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Description("Ask questions about a single website"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitechat --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	config := buildConfig(cli)
	if err := config.Validate(); err != nil {
		return err
	}
	deps.Config = config

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITECHAT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Conversations = sqlite.NewConversationService(m.DB, config.TargetDomain)

	// The history command only reads the database; the question-answering
	// commands need the whole pipeline.
	if cmd == "ask <question>" || cmd == "chat" {
		session, cleanup, err := m.buildSession(ctx, cli, config, deps, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Session = session
	}

	return kongCtx.Run(deps)
}

// buildSession wires the retrieval pipeline and the model client. The
// returned cleanup releases the fetcher.
func (m *Main) buildSession(ctx context.Context, cli *CLI, config sitechat.Config, deps *Dependencies, stderr io.Writer) (*chat.Session, func(), error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var fetcher sitechat.Fetcher
	if cli.RenderJS {
		rf, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render-js")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rf
	} else {
		fetcher = sitehttp.NewFetcher(sitehttp.WithTimeout(config.FetchTimeout))
	}
	fetcher = sitechatslog.NewLoggingFetcher(fetcher, logger)
	cleanup := func() { fetcher.Close() }

	var extractor sitechat.Extractor
	switch cli.Extractor {
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = trafilatura.NewExtractor()
	}

	retriever := &retrieve.Retriever{
		Searcher: sitechatslog.NewLoggingSearcher(sitehttp.NewSearcher(config.TargetDomain), logger),
		Fallback: sitechatslog.NewLoggingSearcher(&sitehttp.SitemapSearcher{
			Sitemaps: sitehttp.NewSitemapService(nil),
			Domain:   config.TargetDomain,
		}, logger),
		Fetcher:            fetcher,
		Extractor:          extractor,
		Converter:          htmltomarkdown.NewConverter(),
		Limiter:            retrieve.NewDomainLimiter(config.RateLimitDelay),
		MaxResultsPerQuery: config.MaxResultsPerQuery,
		MaxTotalDocuments:  config.MaxTotalDocuments,
		MaxExcerptLength:   config.MaxExcerptLength,
		Concurrency:        config.Concurrency,
		RetryDelays:        config.RetryDelays(),
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		cleanup()
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		cleanup()
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	session := chat.NewSession(
		sitechat.NewPlanner(config.TargetDomain),
		retriever,
		gemini.NewAnswerer(client, config.TargetDomain),
		deps.Conversations,
		config,
	)
	return session, cleanup, nil
}

// buildConfig maps CLI flags onto the defaults.
func buildConfig(cli *CLI) sitechat.Config {
	config := sitechat.DefaultConfig()
	config.TargetDomain = cli.Domain
	config.MaxResultsPerQuery = cli.MaxResults
	config.MaxTotalDocuments = cli.MaxDocs
	config.MaxTotalLength = cli.MaxContext
	config.RequestTimeout = cli.Timeout
	config.Concurrency = cli.Concurrency
	return config
}

func defaultDBPath() string {
	if path := os.Getenv("SITECHAT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitechat.db"
	}
	dir := filepath.Join(home, ".sitechat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitechat.db")
}
