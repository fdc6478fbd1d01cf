package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/repometa"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	filter := repometa.RecordFilter{MissingOnly: c.Missing, Limit: c.Limit}
	if c.Acronym != "" {
		filter.Acronym = &c.Acronym
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repometa.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'repometa harvest' to collect some.")
		return nil
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACRONYM\tINSTITUTION\tPROGRAM\tPDF\tSTRATEGY\tURL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Record.Acronym, r.Record.InstitutionName, r.Record.ProgramName, r.Record.PDFLink, r.Strategy, r.URL)
	}
	return w.Flush()
}
