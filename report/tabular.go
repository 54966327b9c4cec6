package report

import (
	"html"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Table describes a simple tabular document: a title, column headers and
// row cells. Cells are plain strings; callers format their own values,
// with FormatNumber and FormatMoney for the common cases.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

var numberPrinter = message.NewPrinter(language.English)

// FormatNumber renders an integer with thousand separators.
func FormatNumber(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatMoney renders an amount with two decimals and separators.
func FormatMoney(amount float64) string {
	return numberPrinter.Sprintf("%.2f", amount)
}

// HTML renders the table as a standalone document suitable for the
// Gotenberg chromium converter. All cell content is escaped.
func (t Table) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(t.Title))
	b.WriteString("</title><style>")
	b.WriteString("body{font-family:Helvetica,Arial,sans-serif;margin:24px}")
	b.WriteString("h1{font-size:18px}")
	b.WriteString("table{width:100%;border-collapse:collapse;font-size:12px}")
	b.WriteString("th,td{border:1px solid #ccc;padding:6px 8px;text-align:left}")
	b.WriteString("th{background:#f2f2f2}")
	b.WriteString(".meta{color:#666;font-size:11px;margin-bottom:12px}")
	b.WriteString("</style></head><body>")

	b.WriteString("<h1>")
	b.WriteString(html.EscapeString(t.Title))
	b.WriteString("</h1>")
	b.WriteString("<p class=\"meta\">Generated at ")
	b.WriteString(time.Now().Format(time.RFC1123))
	b.WriteString("</p>")

	b.WriteString("<table><thead><tr>")
	for _, h := range t.Headers {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(h))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}
