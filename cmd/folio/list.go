package main

import (
	"fmt"

	"github.com/fwojciec/folio"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := folio.RecordFilter{Limit: c.Limit}
	if c.Platform != "" {
		platform := folio.Platform(c.Platform)
		if !platform.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown platform %q\n", c.Platform)
			return folio.Errorf(folio.EINVALID, "unknown platform %q", c.Platform)
		}
		filter.Platform = &platform
	}
	if c.Status != "" {
		status := folio.Status(c.Status)
		if !status.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown status %q\n", c.Status)
			return folio.Errorf(folio.EINVALID, "unknown status %q", c.Status)
		}
		filter.Status = &status
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'folio scrape' to create one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %-8s  %s\n", r.ID, r.Status, r.Platform, r.URL)
	}

	return nil
}
