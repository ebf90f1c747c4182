package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/sitesearch"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	items, err := deps.Sectionizer.Sectionize(string(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if c.Format == "text" {
		if out := sitesearch.FormatItems(items); out != "" {
			fmt.Fprintln(deps.Stdout, out)
		}
		return nil
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
