package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/repometa"
)

// extractOutput is the JSON document printed by the extract command.
type extractOutput struct {
	URL             string `json:"url"`
	Strategy        string `json:"strategy"`
	Acronym         string `json:"acronym"`
	InstitutionName string `json:"institutionName"`
	ProgramName     string `json:"programName"`
	PDFLink         string `json:"pdfLink"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	body, err := readPage(c.File, deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	rec, strategy := deps.Engine.ExtractNamed(body, c.URL)

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(extractOutput{
		URL:             c.URL,
		Strategy:        strategy,
		Acronym:         rec.Acronym,
		InstitutionName: rec.InstitutionName,
		ProgramName:     rec.ProgramName,
		PDFLink:         rec.PDFLink,
	})
}

// readPage reads a saved page from path, or from stdin when path is "-".
func readPage(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		if stdin == nil {
			return "", repometa.Errorf(repometa.EINVALID, "no standard input")
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return string(b), nil
}
