package report

import (
	"bytes"
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer provides table rendering utilities
type TableRenderer interface {
	RenderToString(headers []string, rows [][]string) string
	RenderToWriter(w io.Writer, headers []string, rows [][]string)
}

type tableRenderer struct{}

// NewTableRenderer creates a new table renderer
func NewTableRenderer() TableRenderer {
	return &tableRenderer{}
}

func (r *tableRenderer) RenderToString(headers []string, rows [][]string) string {
	buf := &bytes.Buffer{}
	r.RenderToWriter(buf, headers, rows)
	return buf.String()
}

func (r *tableRenderer) RenderToWriter(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetBorder(true)

	table.AppendBulk(rows)
	table.Render()
}

// Compile-time interface compliance check
var _ TableRenderer = (*tableRenderer)(nil)
