// Package output provides styled terminal output helpers (success, error,
// pass/fail badges, record formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brafe/qc/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	kindStyles   = map[models.Kind]lipgloss.Style{
		models.KindDimensional: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.KindBend:        lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.KindLOI:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeNotFound      = "not_found"
	ErrCodeDatabaseError = "database_error"
	ErrCodeParseError    = "parse_error"
)

type jsonError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func marshalJSONError(code, message string) string {
	var e jsonError
	e.Error.Code = code
	e.Error.Message = message
	data, _ := json.Marshal(e)
	return string(data)
}

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	fmt.Println(marshalJSONError(code, message))
}

// Title renders s bold
func Title(s string) string {
	return titleStyle.Render(s)
}

// Subtle renders s dimmed
func Subtle(s string) string {
	return subtleStyle.Render(s)
}

// StatusBadge returns a colored verdict, e.g. "✓ PASS" or "✗ FAIL"
func StatusBadge(s models.Status) string {
	switch s {
	case models.StatusPass:
		return passStyle.Render("✓ PASS")
	case models.StatusFail:
		return failStyle.Render("✗ FAIL")
	default:
		return string(s)
	}
}

// FormatKind formats a record kind with its color
func FormatKind(k models.Kind) string {
	style, ok := kindStyles[k]
	if !ok {
		return string(k)
	}
	return style.Render(fmt.Sprintf("[%s]", k))
}

// FormatDeviation formats a signed deviation in millimeters
func FormatDeviation(dev float64) string {
	if dev >= 0 {
		return fmt.Sprintf("+%.2f mm", dev)
	}
	return fmt.Sprintf("%.2f mm", dev)
}

// Truncate shortens s to width display cells, ANSI sequences included
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// FormatRecordShort formats a history row
func FormatRecordShort(r models.Record, summaryWidth int) string {
	parts := []string{
		titleStyle.Render(r.ID),
		FormatKind(r.Kind),
		Truncate(r.Summary, summaryWidth),
		StatusBadge(r.Status),
		subtleStyle.Render(FormatTimeAgo(r.CreatedAt)),
	}
	if r.Operator != "" {
		parts = append(parts, subtleStyle.Render(r.Operator))
	}
	return strings.Join(parts, "  ")
}

// KeyValue formats an aligned "label: value" line
func KeyValue(label string, value interface{}) string {
	return fmt.Sprintf("  %-18s %v", label+":", value)
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nTIPS:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// BulletList formats items as a bulleted list with optional indentation
func BulletList(items []string, indent int) []string {
	prefix := strings.Repeat(" ", indent)
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = prefix + "- " + item
	}
	return result
}
