package analyzer

import (
	"fmt"

	"github.com/nsxbet/sql-parser/pkg/query"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// Source names the stage that produced a diagnostic.
type Source string

const (
	SourceParser     Source = "parser"
	SourceValidation Source = "validation"
	SourceCatalog    Source = "catalog"
)

// Diagnostic is a single finding.
//
// Code is meaningful within its source: parser diagnostics carry a
// sqlerr.Code and catalog diagnostics a catalog.WalkThroughErrorType.
// Validation diagnostics have code 0.
type Diagnostic struct {
	Source   Source          `json:"source" yaml:"source"`
	Code     int             `json:"code" yaml:"code"`
	Severity sqlerr.Severity `json:"severity" yaml:"severity"`
	Message  string          `json:"message" yaml:"message"`
	// Line and Column are 1-based, 0 when unknown.
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
	// Statement is the index of the statement the diagnostic belongs to, or
	// -1 for problems between statements.
	Statement int `json:"statement" yaml:"statement"`
}

func (d *Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s %s %d: %s", d.Source, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s %s %d: %s", d.Line, d.Column, d.Source, d.Severity, d.Code, d.Message)
}

// Statement describes one parsed statement.
type Statement struct {
	Keyword string       `json:"keyword" yaml:"keyword"`
	SQL     string       `json:"sql" yaml:"sql"`
	Line    int          `json:"line" yaml:"line"`
	Flags   *query.Flags `json:"flags" yaml:"flags"`
	Tables  []string     `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Result contains the outcome of an analysis.
type Result struct {
	Statements  []*Statement  `json:"statements" yaml:"statements"`
	Diagnostics []*Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Summary     Summary       `json:"summary" yaml:"summary"`
}

// Summary provides aggregate statistics about the findings.
type Summary struct {
	Statements int `json:"statements" yaml:"statements"`

	// Total number of diagnostics (errors + warnings)
	Total    int `json:"total" yaml:"total"`
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
}

// HasErrors returns true if any diagnostic is an error.
//
// This is useful for CI/CD pipelines that should fail on errors:
//
//	if result.HasErrors() {
//	    os.Exit(1)
//	}
func (r *Result) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any diagnostic is a warning.
func (r *Result) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// IsClean returns true if there are no diagnostics at all.
func (r *Result) IsClean() bool {
	return r.Summary.Errors == 0 && r.Summary.Warnings == 0
}

// String returns a human-readable summary of the results.
//
// Example output:
//
//	Analysis Results: 3 statements, 2 diagnostics (1 errors, 1 warnings)
func (r *Result) String() string {
	return fmt.Sprintf(
		"Analysis Results: %d statements, %d diagnostics (%d errors, %d warnings)",
		r.Summary.Statements,
		r.Summary.Total,
		r.Summary.Errors,
		r.Summary.Warnings,
	)
}

// FilterBySeverity returns the diagnostics with the given severity.
func (r *Result) FilterBySeverity(severity sqlerr.Severity) []*Diagnostic {
	filtered := make([]*Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FilterByCode returns the diagnostics with the given code, whatever their
// source.
//
//	missing := result.FilterByCode(int(sqlerr.MissingDelimiter))
func (r *Result) FilterByCode(code int) []*Diagnostic {
	filtered := make([]*Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Code == code {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// calculateSummary computes aggregate statistics from the result
func calculateSummary(r *Result) Summary {
	summary := Summary{Statements: len(r.Statements)}
	for _, d := range r.Diagnostics {
		summary.Total++
		if d.Severity == sqlerr.Warning {
			summary.Warnings++
		} else {
			summary.Errors++
		}
	}
	return summary
}
