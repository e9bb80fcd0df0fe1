package cmd

import (
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-parser/pkg/config"
)

// encode writes v in a structured output format.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case config.OutputYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(v)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

// newTable creates a table writer with the layout shared by all commands.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}
