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
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/fwojciec/repometa/bloom"
	"github.com/fwojciec/repometa/goquery"
	repohttp "github.com/fwojciec/repometa/http"
	"github.com/fwojciec/repometa/rod"
	reposlog "github.com/fwojciec/repometa/slog"
	"github.com/fwojciec/repometa/sqlite"
	"github.com/fwojciec/repometa/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher used by harvest; closed with Main.
	Fetcher repometa.Fetcher

	// Stdin is read by "extract -".
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
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

// dbCommands lists the commands that need the database.
var dbCommands = map[string]bool{
	"harvest":   true,
	"reprocess": true,
	"records":   true,
	"logs":      true,
	"health":    true,
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("repometa"),
		kong.Description("Extract thesis metadata from academic repository pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repometa --help' to see available commands")
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

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sites, err := yaml.LoadSites(cli.SitesFile)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check the site table at %q\n", cli.SitesFile)
		return err
	}
	deps.Resolver = goquery.NewResolver(
		goquery.WithSites(sites),
		goquery.WithStrategyOptions(
			goquery.WithLogger(deps.Logger),
			goquery.WithProgress(func(msg string) { deps.Logger.Debug("progress", "msg", msg) }),
		),
	)
	deps.Engine = repometa.NewEngine(reposlog.NewLoggingResolver(deps.Resolver, deps.Logger))

	if !dbCommands[cmd] {
		return kongCtx.Run(deps)
	}

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set REPOMETA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	deps.Pages = sqlite.NewPageService(m.DB)
	deps.Records = sqlite.NewRecordService(m.DB)
	deps.Logs = sqlite.NewLogService(m.DB)
	deps.Health = sqlite.NewHealthService(m.DB)

	deps.Reprocessor = &batch.Reprocessor{
		Engine:      deps.Engine,
		Pages:       deps.Pages,
		Records:     deps.Records,
		Logs:        deps.Logs,
		Concurrency: cli.Reprocess.Concurrency,
	}

	if cmd == "harvest" {
		if err := m.wireHarvest(deps, &cli.Harvest); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireHarvest builds the fetcher, discovery and harvest pipeline.
func (m *Main) wireHarvest(deps *Dependencies, c *HarvestCmd) error {
	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = repohttp.DefaultUserAgent
	}

	var fetcher repometa.Fetcher
	if c.Browser {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(c.Timeout),
			rod.WithDelay(c.Delay),
			rod.WithUserAgent(userAgent),
		)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = repohttp.NewFetcher(
			repohttp.WithTimeout(c.Timeout),
			repohttp.WithDelay(c.Delay),
			repohttp.WithUserAgent(userAgent),
		)
	}
	fetcher = reposlog.NewLoggingFetcher(fetcher, deps.Logger)
	m.Fetcher = fetcher

	sitemaps := repohttp.NewSitemapService(nil)
	sitemaps.SetUserAgent(userAgent)

	deps.Discoverer = &batch.Discoverer{
		Sitemaps: reposlog.NewLoggingSitemapService(sitemaps, deps.Logger),
		Fetcher:  fetcher,
		Links:    goquery.ItemLinks,
	}

	deps.Harvester = &batch.Harvester{
		Fetcher:     fetcher,
		Engine:      deps.Engine,
		Pages:       deps.Pages,
		Records:     deps.Records,
		Logs:        deps.Logs,
		Health:      deps.Health,
		Seen:        bloom.NewFilter(harvestExpectedURLs, harvestFalsePositiveRate),
		Concurrency: c.Concurrency,
	}
	// Hosts of one institution share a budget on top of the per-host delay.
	if c.Delay > 0 {
		deps.Harvester.RateLimiter = batch.NewDomainLimiter(float64(time.Second) / float64(c.Delay))
	}
	return nil
}

// Bloom filter sizing for one harvest run.
const (
	harvestExpectedURLs      = 100000
	harvestFalsePositiveRate = 0.001
)

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "repometa.db"
	}
	dir := filepath.Join(home, ".repometa")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "repometa.db")
}
