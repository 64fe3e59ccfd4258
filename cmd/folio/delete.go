package main

import (
	"fmt"

	"github.com/fwojciec/folio"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return folio.Errorf(folio.EINVALID, "use --force to confirm deletion")
	}

	record, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		if folio.ErrorCode(err) == folio.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'folio list' to see stored records.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, record.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record for %s\n", record.URL)
	return nil
}
