package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mholzen/lifo/pkg/script"
)

func printJSONToWriter(w io.Writer, response interface{}) error {
	prettyJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot format JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", prettyJSON)
	return nil
}

func printResults(w io.Writer, results []script.Result, format string) error {
	if format == "json" {
		return printJSONToWriter(w, results)
	}
	for _, r := range results {
		fmt.Fprintln(w, r.String())
	}
	return nil
}
