package doctor

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// stubCheck returns a fixed result.
type stubCheck struct {
	name   string
	status Severity
	runs   int
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return "test" }

func (c *stubCheck) Run() *CheckResult {
	c.runs++
	return &CheckResult{Name: c.name, Category: c.Category(), Status: c.status, Message: c.name}
}

func TestNewRunner(t *testing.T) {
	r := NewRunner()
	if r == nil {
		t.Fatal("NewRunner returned nil")
	}
	if len(r.Checks()) != 0 {
		t.Errorf("NewRunner().Checks() = %d, want 0", len(r.Checks()))
	}
}

func TestRunner_AddCheck_OrderPreserved(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}
	for _, name := range names {
		r.AddCheck(&stubCheck{name: name})
	}

	for i, want := range names {
		if got := r.Checks()[i].Name(); got != want {
			t.Errorf("Checks()[%d].Name() = %q, want %q", i, got, want)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []Severity
		wantSummary  Summary
		wantErrors   bool
		wantWarnings bool
	}{
		{
			name:        "no checks",
			wantSummary: Summary{},
		},
		{
			name:        "all pass",
			statuses:    []Severity{SeverityPass, SeverityPass},
			wantSummary: Summary{Passed: 2},
		},
		{
			name:         "mixed",
			statuses:     []Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityError, SeverityError},
			wantSummary:  Summary{Passed: 1, Info: 1, Warnings: 1, Errors: 2},
			wantErrors:   true,
			wantWarnings: true,
		},
		{
			name:         "warnings only",
			statuses:     []Severity{SeverityWarning},
			wantSummary:  Summary{Warnings: 1},
			wantWarnings: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			var checks []*stubCheck
			for i, s := range tt.statuses {
				c := &stubCheck{name: string(rune('a' + i)), status: s}
				checks = append(checks, c)
				r.AddCheck(c)
			}

			before := time.Now().UTC()
			report := r.Run()

			if report.Timestamp.Before(before.Add(-time.Second)) {
				t.Errorf("Timestamp = %v, want around %v", report.Timestamp, before)
			}
			if len(report.Results) != len(tt.statuses) {
				t.Fatalf("len(Results) = %d, want %d", len(report.Results), len(tt.statuses))
			}
			if report.Summary != tt.wantSummary {
				t.Errorf("Summary = %+v, want %+v", report.Summary, tt.wantSummary)
			}
			if report.HasErrors() != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v", report.HasErrors(), tt.wantErrors)
			}
			if report.HasWarnings() != tt.wantWarnings {
				t.Errorf("HasWarnings() = %v, want %v", report.HasWarnings(), tt.wantWarnings)
			}
			for _, c := range checks {
				if c.runs != 1 {
					t.Errorf("check %s ran %d times, want 1", c.name, c.runs)
				}
			}
		})
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestReport_JSONStatusByName(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "x", status: SeverityWarning})

	data, err := json.Marshal(r.Run())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"status":"warning"`) {
		t.Errorf("JSON = %s, want status by name", data)
	}
}
