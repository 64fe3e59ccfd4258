package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/goquery"
	"github.com/fwojciec/folio/htmlquery"
	"github.com/fwojciec/folio/htmltomarkdown"
	foliohttp "github.com/fwojciec/folio/http"
	folioprom "github.com/fwojciec/folio/prometheus"
	"github.com/fwojciec/folio/readability"
	"github.com/fwojciec/folio/scrape"
	folioslog "github.com/fwojciec/folio/slog"
	"github.com/fwojciec/folio/sqlite"
	"github.com/fwojciec/folio/trafilatura"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService folio.RecordService
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
		kong.Name("folio"),
		kong.Description("Extract structured profile data from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'folio --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FOLIO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.Records = m.RecordService

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	deps.Scraper = newScraper(m.RecordService, cli.Options, folioprom.NewMetrics(reg), logger)
	deps.Metrics = folioprom.Handler(reg)

	return kongCtx.Run(deps)
}

// newScraper wires the scrape pipeline: logging and metrics decorators
// around the scrape service, the HTTP fetcher and both strategies. The
// article supplement tries trafilatura first and falls back to readability.
func newScraper(records folio.RecordService, opts Options, metrics *folioprom.Metrics, logger *slog.Logger) folio.Scraper {
	fetcher := folioslog.NewLoggingFetcher(foliohttp.NewFetcher(
		foliohttp.WithTimeout(opts.Timeout),
		foliohttp.WithUserAgent(opts.UserAgent),
	), logger)

	articles := folio.ArticleExtractors{trafilatura.NewExtractor(), readability.NewExtractor()}
	generic := folioprom.NewStrategy(goquery.NewStrategy(articles, htmltomarkdown.NewConverter()), metrics)
	canva := folioprom.NewStrategy(htmlquery.NewCanvaStrategy(), metrics)
	registry := folioslog.NewLoggingRegistry(scrape.NewDefaultRegistry(generic, canva), logger)

	svc := scrape.NewService(records, fetcher, registry)
	svc.RateLimiter = scrape.NewDomainLimiter(opts.RPS)
	svc.Logf = func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}

	return folioprom.NewScraper(folioslog.NewLoggingScraper(svc, logger), metrics)
}

// newLogger builds the process logger from the level and format flags.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, folio.Errorf(folio.EINVALID, "invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, folio.Errorf(folio.EINVALID, "invalid log format %q", format)
}

func defaultDBPath() string {
	if path := os.Getenv("FOLIO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "folio.db"
	}
	dir := filepath.Join(home, ".folio")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "folio.db")
}
