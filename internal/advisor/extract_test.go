package advisor

import (
	"strings"
	"testing"

	"github.com/opswatch/opswatch/internal/database"
)

func TestExtractSeverity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want database.Severity
	}{
		{"explicit critical", "This looks CRITICAL, act now", database.SeverityCritical},
		{"lowercase down", "the host appears to be down", database.SeverityDown},
		{"first token wins", "not major, this is minor", database.SeverityMajor},
		{"clear", "All clear, service recovered", database.SeverityClear},
		{"no token defaults to minor", "sluggish responses observed", database.SeverityMinor},
		{"word boundary required", "breakdown in the parser", database.SeverityMinor},
		{"empty", "", database.SeverityMinor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSeverity(tt.text); got != tt.want {
				t.Errorf("ExtractSeverity(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractActionsBullets(t *testing.T) {
	text := "Summary of the issue.\n" +
		"- Restart the worker pool\n" +
		"* Check the connection limits\n" +
		"1. Verify the failover config\n" +
		"2) Review recent deploys\n"

	got := ExtractActions(text)
	want := []string{
		"Restart the worker pool",
		"Check the connection limits",
		"Verify the failover config",
		"Review recent deploys",
	}
	if len(got) != len(want) {
		t.Fatalf("ExtractActions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractActionsKeywordLines(t *testing.T) {
	text := "The database is saturated.\nInvestigate the slow query log first.\nNothing else noted."

	got := ExtractActions(text)
	if len(got) != 1 || got[0] != "Investigate the slow query log first." {
		t.Errorf("ExtractActions = %v", got)
	}
}

func TestExtractActionsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("- do the thing\n")
	}

	got := ExtractActions(b.String())
	if len(got) != maxExtractedActions {
		t.Errorf("actions = %d, want cap of %d", len(got), maxExtractedActions)
	}
}

func TestExtractActionsFallback(t *testing.T) {
	got := ExtractActions("prose with nothing actionable in it")
	if len(got) != 3 {
		t.Fatalf("fallback actions = %v, want the fixed 3-item list", got)
	}
	if got[0] != "Review the system logs around the reported timeframe" {
		t.Errorf("fallback[0] = %q", got[0])
	}
}
