package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/repometa"
)

// Run executes the logs command.
func (c *LogsCmd) Run(deps *Dependencies) error {
	entries, err := deps.Logs.FindLogs(deps.Ctx, c.URL, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repometa.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No log entries.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %-5s  %s  %s\n", e.CreatedAt.Format(time.DateTime), e.Level, e.URL, e.Message)
	}
	return nil
}
