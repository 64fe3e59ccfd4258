package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/folio"
)

// printRecord writes a human-readable summary of record.
func printRecord(w io.Writer, record *folio.ScrapeRecord) {
	fmt.Fprintf(w, "ID:       %s\n", record.ID)
	fmt.Fprintf(w, "URL:      %s\n", record.URL)
	fmt.Fprintf(w, "Platform: %s\n", record.Platform)
	fmt.Fprintf(w, "Status:   %s\n", record.Status)

	if c := record.Content; c != nil {
		if c.Error != "" {
			fmt.Fprintf(w, "Error:    %s\n", c.Error)
		}
		if c.Title != "" {
			fmt.Fprintf(w, "Title:    %s\n", c.Title)
		}
		if c.Description != "" {
			fmt.Fprintf(w, "Summary:  %s\n", c.Description)
		}
		fmt.Fprintf(w, "Blocks:   %d\n", len(c.Blocks))
	}

	fmt.Fprintf(w, "Images:   %d\n", len(record.Images))
	fmt.Fprintf(w, "Videos:   %d\n", len(record.Videos))

	for _, l := range record.SocialLinks {
		fmt.Fprintf(w, "  %-8s %-10s %s\n", l.Kind, l.Platform, l.URL)
	}
	for _, c := range record.ContactInfos {
		fmt.Fprintf(w, "  %-8s %s\n", c.Type, c.Value)
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
