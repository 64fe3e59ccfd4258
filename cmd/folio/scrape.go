package main

import (
	"fmt"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	record, err := deps.Scraper.Scrape(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		if record != nil {
			fmt.Fprintf(deps.Stderr, "Record %s marked %s\n", record.ID, record.Status)
		}
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, record)
	}
	printRecord(deps.Stdout, record)
	return nil
}

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	results := scrape.Batch(deps.Ctx, deps.Scraper, c.URLs, c.Concurrency)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stdout, "FAIL  %s  %s\n", r.URL, folio.ErrorMessage(r.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "ok    %s  %s\n", r.URL, r.Record.ID)
	}

	fmt.Fprintf(deps.Stdout, "\n%d scraped, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d scrapes failed", failed, len(results))
	}
	return nil
}
