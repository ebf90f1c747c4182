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
	"github.com/fwojciec/sitesearch/goldmark"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/fwojciec/sitesearch/html"
	sslog "github.com/fwojciec/sitesearch/slog"
	"github.com/fwojciec/sitesearch/sqlite"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// maxprocs.Set only fails on an invalid GOMAXPROCS, in which case the
	// runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache database path. Set before calling Run().
	CachePath string

	// SQLite database backing the item cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CachePath: defaultCachePath(),
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
		kong.Name("sitesearch"),
		kong.Description("Build client-side search indexes for documentation sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitesearch --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Sectionizer = html.NewSectionizer()
	if deps.Logger != nil {
		deps.Sectionizer = sslog.NewLoggingSectionizer(deps.Sectionizer, deps.Logger)
	}

	// Every command but sections works on a project. Its config path keys
	// the project's rows in the shared cache.
	var site string
	if cmd != "sections" {
		cfg, path, err := loadConfig(cli.Config)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Use --config or SITESEARCH_CONFIG to point at the project config")
			return err
		}
		site = path
		deps.Config = cfg
		deps.Renderer = goldmark.NewRenderer()
		deps.Reader = goquery.NewPageReader(cfg.SiteName)
		if deps.Logger != nil {
			deps.Reader = sslog.NewLoggingPageReader(deps.Reader, goquery.NewDetector(), deps.Logger)
		}
	}

	if cmd != "sections" && !cli.NoCache {
		// Open creates the cache directory on first use.
		m.DB = sqlite.NewDB(m.CachePath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set SITESEARCH_CACHE to use a different cache path, or pass --no-cache")
			return fmt.Errorf("failed to open cache at %q: %w", m.CachePath, err)
		}
		defer m.Close()

		cache := sqlite.NewItemCache(m.DB, site)
		deps.Cache = cache
		deps.Pruner = cache
		if deps.Logger != nil {
			deps.Cache = sslog.NewLoggingItemCache(cache, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

func defaultCachePath() string {
	if path := os.Getenv("SITESEARCH_CACHE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitesearch.db"
	}
	return filepath.Join(home, ".sitesearch", "cache.db")
}
