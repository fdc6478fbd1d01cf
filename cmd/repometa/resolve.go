package main

import (
	"fmt"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	var body string
	if c.File != "" {
		b, err := readPage(c.File, deps.Stdin)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		body = b
	}

	s := deps.Resolver.Strategy(c.URL, body)
	fmt.Fprintf(deps.Stdout, "strategy: %s\n", s.Name())

	id := s.Identity()
	if id.IsZero() {
		fmt.Fprintln(deps.Stdout, "identity: (inferred from page)")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "identity: %s (%s)\n", id.Acronym, id.Name)
	return nil
}
