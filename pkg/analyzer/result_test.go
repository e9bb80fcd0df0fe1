package analyzer

import (
	"testing"

	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

func TestResult_HasErrors(t *testing.T) {
	tests := []struct {
		name     string
		result   *Result
		expected bool
	}{
		{
			name: "no errors",
			result: &Result{
				Summary: Summary{Errors: 0, Warnings: 2},
			},
			expected: false,
		},
		{
			name: "has errors",
			result: &Result{
				Summary: Summary{Errors: 1, Warnings: 0},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.HasErrors()
			if got != tt.expected {
				t.Errorf("HasErrors() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResult_HasWarnings(t *testing.T) {
	tests := []struct {
		name     string
		result   *Result
		expected bool
	}{
		{
			name: "no warnings",
			result: &Result{
				Summary: Summary{Errors: 1, Warnings: 0},
			},
			expected: false,
		},
		{
			name: "has warnings",
			result: &Result{
				Summary: Summary{Errors: 0, Warnings: 1},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.HasWarnings()
			if got != tt.expected {
				t.Errorf("HasWarnings() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResult_IsClean(t *testing.T) {
	tests := []struct {
		name     string
		summary  Summary
		expected bool
	}{
		{name: "clean", summary: Summary{Statements: 3}, expected: true},
		{name: "errors", summary: Summary{Errors: 1}, expected: false},
		{name: "warnings", summary: Summary{Warnings: 1}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &Result{Summary: tt.summary}
			if got := result.IsClean(); got != tt.expected {
				t.Errorf("IsClean() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResult_String(t *testing.T) {
	result := &Result{Summary: Summary{Statements: 3, Total: 2, Errors: 1, Warnings: 1}}
	expected := "Analysis Results: 3 statements, 2 diagnostics (1 errors, 1 warnings)"
	if got := result.String(); got != expected {
		t.Errorf("String() = %q, want %q", got, expected)
	}
}

func TestResult_Filters(t *testing.T) {
	result := &Result{
		Diagnostics: []*Diagnostic{
			{Source: SourceParser, Code: 301, Severity: sqlerr.Error},
			{Source: SourceParser, Code: 209, Severity: sqlerr.Warning},
			{Source: SourceCatalog, Code: 301, Severity: sqlerr.Error},
		},
	}

	if got := len(result.FilterBySeverity(sqlerr.Error)); got != 2 {
		t.Errorf("FilterBySeverity(Error) returned %d diagnostics, want 2", got)
	}
	if got := len(result.FilterBySeverity(sqlerr.Fatal)); got != 0 {
		t.Errorf("FilterBySeverity(Fatal) returned %d diagnostics, want 0", got)
	}
	if got := result.FilterByCode(301); len(got) != 2 || got[1].Source != SourceCatalog {
		t.Errorf("FilterByCode(301) = %v", got)
	}
	if got := result.FilterByCode(999); got == nil || len(got) != 0 {
		t.Errorf("FilterByCode(999) = %v, want empty slice", got)
	}

	summary := calculateSummary(result)
	if summary.Total != 3 || summary.Errors != 2 || summary.Warnings != 1 {
		t.Errorf("calculateSummary() = %+v", summary)
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := &Diagnostic{Source: SourceParser, Code: 301, Severity: sqlerr.Error, Message: "Unrecognized statement type.", Line: 2, Column: 1}
	if got, want := d.String(), "2:1: parser error 301: Unrecognized statement type."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	d.Line = 0
	if got, want := d.String(), "parser error 301: Unrecognized statement type."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
