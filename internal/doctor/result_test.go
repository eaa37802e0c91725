package doctor

import (
	"encoding/json"
	"testing"
)

func TestReport_DecodesSavedJSON(t *testing.T) {
	saved := `{
		"timestamp": "2026-01-02T03:04:05Z",
		"results": [
			{"name": "platform-family", "category": "platform", "status": "pass", "message": "linux is supported"},
			{"name": "git-symlinks", "category": "git", "status": "warning", "message": "core.symlinks is false", "fixable": true}
		],
		"summary": {"passed": 1, "info": 0, "warnings": 1, "errors": 0}
	}`

	var report Report
	if err := json.Unmarshal([]byte(saved), &report); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := report.Results[1].Status; got != SeverityWarning {
		t.Errorf("Results[1].Status = %v, want %v", got, SeverityWarning)
	}
	if !report.HasWarnings() || report.HasErrors() {
		t.Errorf("HasWarnings/HasErrors = %v/%v, want true/false", report.HasWarnings(), report.HasErrors())
	}
}

func TestSeverity_UnmarshalUnknown(t *testing.T) {
	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("UnmarshalText(\"fatal\") error = nil, want error")
	}
}

func TestSeverity_Problem(t *testing.T) {
	for s, want := range map[Severity]bool{
		SeverityPass:    false,
		SeverityInfo:    false,
		SeverityWarning: true,
		SeverityError:   true,
	} {
		if got := s.Problem(); got != want {
			t.Errorf("%v.Problem() = %v, want %v", s, got, want)
		}
	}
}

func TestSummary_Worst(t *testing.T) {
	tests := []struct {
		add  []Severity
		want Severity
	}{
		{add: nil, want: SeverityPass},
		{add: []Severity{SeverityPass, SeverityInfo}, want: SeverityInfo},
		{add: []Severity{SeverityError, SeverityWarning, SeverityPass}, want: SeverityError},
		{add: []Severity{Severity(42)}, want: SeverityPass},
	}

	for _, tt := range tests {
		var s Summary
		for _, sev := range tt.add {
			s.Add(sev)
		}
		if got := s.Worst(); got != tt.want {
			t.Errorf("Worst() after %v = %v, want %v", tt.add, got, tt.want)
		}
	}
}
