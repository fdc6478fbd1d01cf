package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/repometa"
)

// Run executes the health command.
func (c *HealthCmd) Run(deps *Dependencies) error {
	hosts, err := deps.Health.FindHealth(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repometa.ErrorMessage(err))
		return err
	}

	if len(hosts) == 0 {
		fmt.Fprintln(deps.Stdout, "No hosts contacted yet.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HOST\tOK\tFAILED\tSTATUS\tUPDATED\tLAST ERROR")
	for _, h := range hosts {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			h.Host, h.Successes, h.Failures, h.LastStatus, h.UpdatedAt.Format(time.DateTime), h.LastError)
	}
	return w.Flush()
}
