package query

import (
	"regexp"
	"strings"

	"github.com/nsxbet/sql-parser/pkg/statements"
)

var (
	spaceRun   = regexp.MustCompile(`[\t ]+`)
	newlineRun = regexp.MustCompile(`\n+`)
	indented   = regexp.MustCompile(`\n\s+`)
)

// Normalize formats and limits the max length of SQL text for logging.
// It removes extra whitespace, normalizes line breaks, and truncates if too long.
func Normalize(sql string) string {
	sql = strings.TrimSpace(sql)
	sql = spaceRun.ReplaceAllString(sql, " ")
	sql = newlineRun.ReplaceAllString(sql, "\n")
	sql = indented.ReplaceAllString(sql, "\n")

	// Single-line queries stay on one line
	if !strings.Contains(sql, "\n") {
		const maxLength = 1000
		if len(sql) > maxLength {
			return sql[:maxLength] + "..."
		}
		return sql
	}

	const maxLength = 2000
	if len(sql) > maxLength {
		// Find a good break point (end of line if possible)
		truncated := sql[:maxLength]
		if lastNewline := strings.LastIndex(truncated, "\n"); lastNewline > maxLength-200 {
			truncated = truncated[:lastNewline]
		}
		return truncated + "\n..."
	}
	return sql
}

// ANSI colors used by Highlight, following the Rails 5+ log conventions.
const (
	colorBlue    = "\033[34m" // SELECT
	colorGreen   = "\033[32m" // INSERT
	colorYellow  = "\033[33m" // UPDATE
	colorRed     = "\033[31m" // DELETE, ROLLBACK
	colorCyan    = "\033[36m" // transaction control
	colorMagenta = "\033[35m" // EXPLAIN, DDL and the rest
	colorWhite   = "\033[37m" // SELECT FOR UPDATE
	colorReset   = "\033[0m"
)

// Color returns the ANSI color code for a statement based on its type.
func Color(stmt statements.Statement) string {
	switch s := stmt.(type) {
	case *statements.SelectStatement:
		if s.Lock != "" {
			return colorWhite
		}
		return colorBlue
	case *statements.InsertStatement:
		return colorGreen
	case *statements.UpdateStatement:
		return colorYellow
	case *statements.DeleteStatement:
		return colorRed
	case *statements.TransactionStatement:
		if s.Kind == "ROLLBACK" {
			return colorRed
		}
		return colorCyan
	case *statements.SetStatement:
		if s.Options.Has("TRANSACTION") {
			return colorCyan
		}
	}
	return colorMagenta
}

// Highlight renders stmt wrapped in its color.
func Highlight(stmt statements.Statement) string {
	return Color(stmt) + stmt.Build() + colorReset
}
