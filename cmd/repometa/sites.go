package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "RULE\tACRONYM\tNAME\tMATCHES")
	for _, r := range deps.Resolver.Rules() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Identity.Acronym, r.Identity.Name, strings.Join(r.Patterns, ", "))
	}

	sites := deps.Resolver.Sites()
	if len(sites) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SITE\tACRONYM\tNAME\tFAMILY")
		for _, s := range sites {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.URL, s.Acronym, s.Name, s.Family)
		}
	}
	return w.Flush()
}
