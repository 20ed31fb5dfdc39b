// Package ui renders command output: headers, status lines, compiled SQL
// and tables.
package ui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	placeholderColor = color.New(color.FgYellow, color.Bold)
	placeholderRe    = regexp.MustCompile(`\$\d+|\?`)
)

// Printer writes styled output to w.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints a title with an optional subtitle
func (p *Printer) Header(title, subtitle string) {
	block := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			TitleStyle.Render(title),
			SecondaryStyle.Render(subtitle),
		))
	fmt.Fprintln(p.w, block)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.w, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Section prints a dim section title
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w, SecondaryStyle.Render("── "+title))
}

// SQL prints a compiled statement with its placeholders highlighted.
func (p *Printer) SQL(sql string) {
	fmt.Fprintln(p.w, HighlightPlaceholders(sql))
}

// Params prints bound values as a numbered table. Nothing is printed for an
// empty list.
func (p *Printer) Params(params []any) error {
	if len(params) == 0 {
		return nil
	}
	return p.Table([]string{"#", "Value", "Type"}, ParamRows(params))
}

// Markdown renders a statement and its parameters with glamour. Output that
// is not a terminal gets the plain notty style.
func (p *Printer) Markdown(title, sql string, params []any) error {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if f, ok := p.w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(StatementMarkdown(title, sql, params))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(p.w, out)
	return err
}

// Rows prints result rows as a table with sorted column headers.
func (p *Printer) Rows(rows []map[string]any) error {
	if len(rows) == 0 {
		p.Warning("no rows")
		return nil
	}
	headers, data := RowTable(rows)
	return p.Table(headers, data)
}

// Table prints a table using pterm
func (p *Printer) Table(headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}

// HighlightPlaceholders colors $n and ? placeholders.
func HighlightPlaceholders(sql string) string {
	return placeholderRe.ReplaceAllStringFunc(sql, func(m string) string {
		return placeholderColor.Sprint(m)
	})
}

// ParamRows formats params as table rows of position, value and Go type.
func ParamRows(params []any) [][]string {
	rows := make([][]string, len(params))
	for i, v := range params {
		rows[i] = []string{fmt.Sprint(i + 1), fmt.Sprint(v), fmt.Sprintf("%T", v)}
	}
	return rows
}

// StatementMarkdown formats a statement as a markdown heading, a fenced sql
// block and a parameter table. The table is left out when there are no
// params.
func StatementMarkdown(title, sql string, params []any) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "### %s\n\n", title)
	}
	fmt.Fprintf(&sb, "```sql\n%s\n```\n", sql)
	if len(params) == 0 {
		return sb.String()
	}

	sb.WriteString("\n| # | Value | Type |\n| --- | --- | --- |\n")
	for _, row := range ParamRows(params) {
		for i := range row {
			row[i] = cellEscaper.Replace(row[i])
		}
		fmt.Fprintf(&sb, "| %s |\n", strings.Join(row, " | "))
	}
	return sb.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// RowTable turns result maps into headers and rows, columns sorted by name.
func RowTable(rows []map[string]any) ([]string, [][]string) {
	seen := map[string]bool{}
	var headers []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	data := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(headers))
		for j, h := range headers {
			if v, ok := r[h]; ok && v != nil {
				line[j] = fmt.Sprint(v)
			} else {
				line[j] = "NULL"
			}
		}
		data[i] = line
	}
	return headers, data
}
