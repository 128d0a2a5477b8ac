package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// summaryWidth caps the summary column in history tables.
const summaryWidth = 48

// Formatter handles output formatting for the CLI commands.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter writing to the given stream.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatReportJSON writes an analysis report as indented JSON.
func (f *Formatter) FormatReportJSON(report ReportDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// FormatReport writes an analysis report as a plain text table.
func (f *Formatter) FormatReport(report ReportDTO) error {
	header := joinPresent(" · ", report.Name, report.Language, report.Analyzer)
	if header != "" {
		if _, err := fmt.Fprintln(f.writer, header); err != nil {
			return err
		}
	}
	if report.Summary != "" {
		if _, err := fmt.Fprintln(f.writer, report.Summary); err != nil {
			return err
		}
	}

	if len(report.Findings) == 0 {
		_, err := fmt.Fprintln(f.writer, "\nNo findings.")
		return err
	}

	if _, err := fmt.Fprintf(f.writer, "\n%4s  %-7s %s\n", "LINE", "RISK", "TITLE"); err != nil {
		return err
	}
	for _, fd := range report.Findings {
		line := "-"
		if fd.Line > 0 {
			line = fmt.Sprintf("%d", fd.Line)
		}
		title := fd.Title
		if title == "" {
			title = fd.Reason
		}
		if _, err := fmt.Fprintf(f.writer, "%4s  %-7s %s\n", line, fd.Risk, title); err != nil {
			return err
		}
	}
	return nil
}

// FormatCyclesJSON writes a history listing as indented JSON.
func (f *Formatter) FormatCyclesJSON(cycles []CycleDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cycles)
}

// FormatCycles writes a history listing as a plain text table, newest
// first as stored.
func (f *Formatter) FormatCycles(cycles []CycleDTO) error {
	if len(cycles) == 0 {
		_, err := fmt.Fprintln(f.writer, "No review history.")
		return err
	}

	if _, err := fmt.Fprintf(f.writer, "%-16s  %-7s %8s  %-8s  %-12s  %s\n",
		"CREATED", "RISK", "FINDINGS", "LANGUAGE", "ANALYZER", "SUMMARY"); err != nil {
		return err
	}
	for _, c := range cycles {
		risk := c.MaxRisk
		if risk == "" {
			risk = "-"
		}
		if _, err := fmt.Fprintf(f.writer, "%-16s  %-7s %8d  %-8s  %-12s  %s\n",
			c.CreatedAt.Format("2006-01-02 15:04"),
			risk,
			c.Findings,
			c.Language,
			c.Analyzer,
			ansi.Truncate(c.Summary, summaryWidth, "…"),
		); err != nil {
			return err
		}
	}
	return nil
}

// joinPresent joins the non-empty parts with sep.
func joinPresent(sep string, parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, sep)
}
