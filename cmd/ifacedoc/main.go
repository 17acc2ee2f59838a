package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ifacedoc"
	"github.com/fwojciec/ifacedoc/crawl"
	"github.com/fwojciec/ifacedoc/goquery"
	ifacehttp "github.com/fwojciec/ifacedoc/http"
	"github.com/fwojciec/ifacedoc/jstree"
	ifaceslog "github.com/fwojciec/ifacedoc/slog"
	"github.com/fwojciec/ifacedoc/sqlite"
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

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	InterfaceService ifacedoc.InterfaceService
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
		kong.Name("ifacedoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"index_url":     defaultIndexURL,
			"hierarchy_url": defaultHierarchyURL,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ifacedoc --help' to see available commands")
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

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set IFACEDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel(cli.Verbose)}))

	m.InterfaceService = ifaceslog.NewLoggingInterfaceService(sqlite.NewInterfaceService(m.DB), logger)
	deps.DB = m.DB
	deps.Interfaces = m.InterfaceService

	// The crawler stack is only wired for the crawl command: it owns an
	// HTTP client and a hierarchy cache the query commands never need.
	if cmd == "crawl" {
		fetcher := ifaceslog.NewLoggingFetcher(ifacehttp.NewFetcher(), logger)
		defer fetcher.Close()

		hierarchy := jstree.NewLoader(fetcher, cli.Crawl.HierarchyURL, logger)

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(hierarchy, logger),
			Discoverer:  goquery.NewDiscoverer(),
			Hierarchy:   hierarchy,
			Interfaces:  m.InterfaceService,
			RateLimiter: crawl.NewDomainLimiter(cli.Crawl.RPS),
			Concurrency: cli.Crawl.Concurrency,
			Limit:       cli.Crawl.Limit,
		}
	}

	return kongCtx.Run(deps)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func defaultDBPath() string {
	if path := os.Getenv("IFACEDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ifacedoc.db"
	}
	dir := filepath.Join(home, ".ifacedoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ifacedoc.db")
}
