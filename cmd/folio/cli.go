package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/folio"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Records folio.RecordService
	Scraper folio.Scraper
	Metrics http.Handler
}

// Options are the global flags shared by every command.
type Options struct {
	Timeout   time.Duration `default:"10s" env:"FOLIO_TIMEOUT" help:"Fetch timeout"`
	RPS       float64       `name:"rps" default:"1" env:"FOLIO_RPS" help:"Fetches per second per domain (0 disables limiting)"`
	UserAgent string        `name:"user-agent" default:"folio/1.0 (+https://github.com/fwojciec/folio)" env:"FOLIO_USER_AGENT" help:"User-Agent header sent with every fetch"`
	LogLevel  string        `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"FOLIO_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string        `name:"log-format" default:"text" enum:"text,json" env:"FOLIO_LOG_FORMAT" help:"Log format (text, json)"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Options `embed:""`

	Scrape ScrapeCmd `cmd:"" help:"Scrape a page and store the result"`
	Batch  BatchCmd  `cmd:"" help:"Scrape several pages concurrently"`
	Show   ShowCmd   `cmd:"" help:"Show a stored record"`
	List   ListCmd   `cmd:"" help:"List stored records"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored record"`
	Serve  ServeCmd  `cmd:"" help:"Serve the HTTP API"`
}

// Validate rejects option values kong's tags cannot express.
func (c *CLI) Validate() error {
	if c.RPS < 0 {
		return folio.Errorf(folio.EINVALID, "--rps must not be negative, got %v", c.RPS)
	}
	return nil
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL  string `arg:"" help:"Page URL"`
	JSON bool   `help:"Print the record as JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent scrape limit"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Record ID"`
	JSON bool   `help:"Print the record as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Platform string `help:"Only records of this platform"`
	Status   string `help:"Only records with this status"`
	Limit    int    `short:"n" help:"Maximum number of records"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Record ID"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"FOLIO_ADDR" help:"Listen address"`
}
