// Command sitefetch fetches one page and prints the extracted content,
// for checking what the question-answering pipeline would see.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/duna-akin/sitechat"
	"github.com/duna-akin/sitechat/htmltomarkdown"
	sitehttp "github.com/duna-akin/sitechat/http"
	"github.com/duna-akin/sitechat/readability"
	"github.com/duna-akin/sitechat/rod"
	"github.com/duna-akin/sitechat/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL       string        `arg:"" help:"Page URL to fetch"`
	RenderJS  bool          `name:"render-js" help:"Fetch with a headless browser (requires Chrome)"`
	Extractor string        `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction engine"`
	Timeout   time.Duration `default:"10s" help:"Fetch timeout"`
	HTML      bool          `help:"Print extracted HTML instead of markdown"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitefetch"),
		kong.Description("Fetch one page and print its extracted content"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	var fetcher sitechat.Fetcher
	if cli.RenderJS {
		rf, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render-js")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rf
	} else {
		fetcher = sitehttp.NewFetcher(sitehttp.WithTimeout(cli.Timeout))
	}
	defer fetcher.Close()

	var extractor sitechat.Extractor
	switch cli.Extractor {
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = trafilatura.NewExtractor()
	}

	html, err := fetcher.Fetch(ctx, cli.URL)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", cli.URL, err)
	}

	result, err := extractor.Extract(html)
	if err != nil {
		return fmt.Errorf("extracting content: %w", err)
	}

	fmt.Fprintf(stderr, "Title: %s\n\n", result.Title)

	if cli.HTML {
		fmt.Fprintln(stdout, result.ContentHTML)
		return nil
	}

	markdown, err := htmltomarkdown.NewConverter().Convert(result.ContentHTML)
	if err != nil {
		return fmt.Errorf("converting to markdown: %w", err)
	}
	fmt.Fprintln(stdout, markdown)
	return nil
}
