package main

import (
	"fmt"

	"github.com/fwojciec/folio"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	record, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, record)
	}
	printRecord(deps.Stdout, record)
	return nil
}
