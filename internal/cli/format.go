package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

var (
	// fatih/color disables itself when stdout is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)

	additionColor = color.New(color.FgGreen)
	deletionColor = color.New(color.FgRed)
	hunkColor     = color.New(color.FgCyan)
)

// stderr receives error output.
var stderr io.Writer = os.Stderr

// PrintSection prints a section header
func PrintSection(title string) {
	_, _ = fmt.Fprintln(stdout)
	_, _ = headerColor.Fprintf(stdout, "▸ %s\n", title)
	_, _ = fmt.Fprintln(stdout)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	_, _ = fmt.Fprintln(stdout, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueColor.Fprintln(stdout, value)
}

// PrintList prints a list of items with bullet points
func PrintList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(stdout, "%s• %s\n", indentStr, item)
	}
}

// PrintTable prints a simple column table
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	_, _ = headerColor.Fprint(stdout, "  ")
	for i, header := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(stdout, "  ")
		}
		_, _ = headerColor.Fprintf(stdout, "%-*s", colWidths[i], header)
	}
	_, _ = fmt.Fprintln(stdout)

	_, _ = fmt.Fprint(stdout, "  ")
	for i, width := range colWidths {
		if i > 0 {
			_, _ = fmt.Fprint(stdout, "  ")
		}
		_, _ = fmt.Fprint(stdout, strings.Repeat("-", width))
	}
	_, _ = fmt.Fprintln(stdout)

	for _, row := range rows {
		_, _ = fmt.Fprint(stdout, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				_, _ = fmt.Fprint(stdout, "  ")
			}
			_, _ = valueColor.Fprintf(stdout, "%-*s", colWidths[i], cell)
		}
		_, _ = fmt.Fprintln(stdout)
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(stdout, "  %s\n", msg)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// actionColor picks the color a file action is rendered in.
func actionColor(action runner.Action) *color.Color {
	switch action {
	case runner.ActionCreated, runner.ActionModified:
		return successColor
	case runner.ActionSkipped:
		return warningColor
	default:
		return dimColor
	}
}

// colorizeDiff colors the lines of a unified diff.
func colorizeDiff(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = boldColor.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkColor.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = additionColor.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = deletionColor.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}
