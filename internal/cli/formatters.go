package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// TableFormatter helps format tabular output
type TableFormatter struct {
	writer *tabwriter.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	return &TableFormatter{writer: tw}
}

// Header writes the table header
func (t *TableFormatter) Header(columns ...string) {
	fmt.Fprintln(t.writer, strings.Join(columns, "\t"))
	fmt.Fprintln(t.writer, strings.Repeat("-", 60))
}

// Row writes a table row
func (t *TableFormatter) Row(values ...string) {
	fmt.Fprintln(t.writer, strings.Join(values, "\t"))
}

// Flush writes the buffered table to output
func (t *TableFormatter) Flush() {
	t.writer.Flush()
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText:
		// For text format, we expect the caller to have already formatted
		// the data appropriately. This is a fallback.
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TruncateString truncates a string to the specified number of runes
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// YesNo renders a flag for table output
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
