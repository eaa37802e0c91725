package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/gitlink/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NoEntry marks an issue that is not tied to a manifest entry.
const NoEntry = -1

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity `json:"severity"`
	// Entry is the zero-based index of the offending entry, or NoEntry.
	Entry int `json:"entry"`
	// Field names the offending field (optional).
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Value is the rejected value (optional).
	Value any `json:"value,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Entry != NoEntry {
		fmt.Fprintf(&sb, "entry %d: ", i.Entry)
	}
	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues.
type Result struct {
	Issues []Issue `json:"issues"`
}

// AddError adds an error issue to the result.
func (r *Result) AddError(entry int, field, message string, value any) {
	r.add(SeverityError, entry, field, message, value)
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(entry int, field, message string, value any) {
	r.add(SeverityWarning, entry, field, message, value)
}

func (r *Result) add(s Severity, entry int, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{
		Severity: s,
		Entry:    entry,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

// Errors returns all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

// Err returns nil when the result has no errors. Otherwise it returns
// sentinel wrapped with the first error issue and a count of the rest, so
// callers can match it with errors.Is.
func (r *Result) Err(sentinel error) error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return errors.Wrap(sentinel, msg)
}
