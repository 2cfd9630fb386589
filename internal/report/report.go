package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/kurihiro0119/unowned-components/internal/domain"
)

// TableTitle is printed above a non-empty table
const TableTitle = "Components w/o lead"

// Renderer writes component issue counts to w
type Renderer interface {
	Render(w io.Writer, counts domain.ComponentIssueCounts) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(w io.Writer, counts domain.ComponentIssueCounts) error

// Render calls f(w, counts)
func (f RendererFunc) Render(w io.Writer, counts domain.ComponentIssueCounts) error {
	return f(w, counts)
}

// New returns the renderer for format, "table" or "json"
func New(format string) (Renderer, error) {
	switch format {
	case "", "table":
		return TableRenderer{}, nil
	case "json":
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TableRenderer prints a Component/Issues table. Empty counts print nothing.
type TableRenderer struct{}

// Render implements Renderer
func (TableRenderer) Render(w io.Writer, counts domain.ComponentIssueCounts) error {
	if len(counts) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, TableTitle); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Component", "Issues"})
	table.SetAutoFormatHeaders(false)
	for _, row := range counts.Rows() {
		table.Append([]string{row.Component, strconv.Itoa(row.Issues)})
	}
	table.Render()

	return nil
}

// JSONRenderer prints counts as a JSON object keyed by component name
type JSONRenderer struct{}

// Render implements Renderer
func (JSONRenderer) Render(w io.Writer, counts domain.ComponentIssueCounts) error {
	if counts == nil {
		counts = domain.ComponentIssueCounts{}
	}
	b, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("marshalling counts: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
