package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/fwojciec/repometa/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Resolver    *goquery.Resolver
	Engine      *repometa.Engine
	Pages       repometa.PageService
	Records     repometa.RecordService
	Logs        repometa.LogService
	Health      repometa.HealthService
	Harvester   *batch.Harvester
	Reprocessor *batch.Reprocessor
	Discoverer  *batch.Discoverer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"REPOMETA_DB" help:"Database path (default ~/.repometa/repometa.db)"`
	SitesFile string `name:"sites-file" env:"REPOMETA_SITES" help:"Site table YAML path"`
	Verbose   bool   `short:"v" help:"Log debug output to stderr"`

	Extract   ExtractCmd   `cmd:"" help:"Extract the record from a saved page"`
	Resolve   ResolveCmd   `cmd:"" help:"Show which strategy handles a URL"`
	Harvest   HarvestCmd   `cmd:"" help:"Fetch item pages, store them and extract records"`
	Reprocess ReprocessCmd `cmd:"" help:"Re-extract records from stored pages"`
	Records   RecordsCmd   `cmd:"" help:"List extracted records"`
	Logs      LogsCmd      `cmd:"" help:"Show extraction diagnostics"`
	Health    HealthCmd    `cmd:"" help:"Show fetch health per repository host"`
	Sites     SitesCmd     `cmd:"" help:"List built-in institution rules and site table entries"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" help:"HTML file to read, or - for stdin"`
	URL  string `required:"" help:"Source URL the page was fetched from"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	URL  string `arg:"" help:"Item page URL"`
	File string `help:"Page body used for content sniffing"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"Item page URLs"`
	Sitemap     string        `help:"Discover item URLs from this repository's sitemaps"`
	Listing     []string      `help:"Discover item URLs linked from these listing pages (repeatable)"`
	Filter      []string      `short:"F" help:"Only harvest URLs matching regex (repeatable)"`
	Exclude     []string      `short:"x" help:"Skip URLs matching regex (repeatable)"`
	Preview     bool          `short:"p" help:"Print discovered URLs without harvesting"`
	Browser     bool          `help:"Render pages in headless Chrome"`
	Timeout     time.Duration `default:"30s" help:"Per-request timeout"`
	Delay       time.Duration `default:"1s" help:"Minimum delay between requests to one host"`
	UserAgent   string        `name:"user-agent" help:"User-Agent header"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// ReprocessCmd is the "reprocess" subcommand.
type ReprocessCmd struct {
	Host        string `help:"Only reprocess pages from this host"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Acronym string `help:"Only records for this institution acronym"`
	Missing bool   `help:"Only records with at least one missing field"`
	Limit   int    `default:"0" help:"Maximum number of records (0 for all)"`
	JSON    bool   `name:"json" help:"Print one JSON object per line"`
}

// LogsCmd is the "logs" subcommand.
type LogsCmd struct {
	URL   string `arg:"" optional:"" help:"Only entries for this URL"`
	Limit int    `default:"50" help:"Maximum number of entries"`
}

// HealthCmd is the "health" subcommand.
type HealthCmd struct{}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}
