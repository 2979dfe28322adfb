package policy

import (
	"slices"

	"go-leave/internal/domain"
)

type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

func (s Severity) valid() bool {
	return s == SeverityError || s == SeverityWarning || s == SeverityInfo
}

// Result is the outcome of one rule. Severity, Code and Message are only
// meaningful when Passed is false.
type Result struct {
	Passed      bool
	Severity    Severity
	Code        string
	Message     string
	Suggestions []string
}

// Rule is a pure check over an Input. Priority orders evaluation and ranks
// suggestions; it never short-circuits other rules.
type Rule interface {
	ID() string
	AppliesTo() []domain.LeaveType
	Priority() int
	Validate(in Input) Result
	Explain(in Input) string
}

func pass() Result { return Result{Passed: true} }

func fail(sev Severity, code, message string, suggestions ...string) Result {
	return Result{
		Passed:      false,
		Severity:    sev,
		Code:        code,
		Message:     message,
		Suggestions: suggestions,
	}
}

type base struct {
	id       string
	types    []domain.LeaveType
	priority int
}

func (b base) ID() string                    { return b.id }
func (b base) AppliesTo() []domain.LeaveType { return slices.Clone(b.types) }
func (b base) Priority() int                 { return b.priority }

func appliesTo(r Rule, t domain.LeaveType) bool {
	for _, at := range r.AppliesTo() {
		if at == domain.LeaveAll || at == t {
			return true
		}
	}
	return false
}

var allTypes = []domain.LeaveType{domain.LeaveAll}

func balanceTypes() []domain.LeaveType {
	var out []domain.LeaveType
	for _, t := range domain.LeaveTypes() {
		if t.TracksBalance() {
			out = append(out, t)
		}
	}
	return out
}
