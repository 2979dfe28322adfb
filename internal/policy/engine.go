package policy

import (
	"sort"

	"go-leave/internal/domain"
)

// MaxSuggestions caps the merged suggestion list of a ValidationResult.
const MaxSuggestions = 5

type Violation struct {
	RuleID   string   `json:"rule_id"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type Suggestion struct {
	RuleID   string `json:"rule_id"`
	Priority int    `json:"priority"`
	Text     string `json:"text"`
}

type ValidationResult struct {
	Valid       bool         `json:"is_valid"`
	Violations  []Violation  `json:"violations"`
	Warnings    []Violation  `json:"warnings"`
	Infos       []Violation  `json:"infos"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Codes returns the codes of all blocking violations.
func (r ValidationResult) Codes() []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Code
	}
	return out
}

func (r ValidationResult) HasCode(code string) bool {
	for _, group := range [][]Violation{r.Violations, r.Warnings, r.Infos} {
		for _, v := range group {
			if v.Code == code {
				return true
			}
		}
	}
	return false
}

type Explanation struct {
	RuleID string `json:"rule_id"`
	Text   string `json:"text"`
}

// Engine evaluates a fixed rule set. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine orders rules by descending priority, then by id, so evaluation
// order never depends on how the caller assembled the list.
func NewEngine(rules ...Rule) *Engine {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority() != sorted[j].Priority() {
			return sorted[i].Priority() > sorted[j].Priority()
		}
		return sorted[i].ID() < sorted[j].ID()
	})
	return &Engine{rules: sorted}
}

// NewDefaultEngine builds an engine with every shipped rule configured by cfg.
func NewDefaultEngine(cfg Config) *Engine {
	return NewEngine(DefaultRules(cfg)...)
}

func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

func (e *Engine) applicable(t domain.LeaveType) []Rule {
	out := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if appliesTo(r, t) {
			out = append(out, r)
		}
	}
	return out
}

// Validate runs every applicable rule; a failing rule never prevents the
// rest from running.
func (e *Engine) Validate(in Input) ValidationResult {
	res := ValidationResult{
		Valid:       true,
		Violations:  []Violation{},
		Warnings:    []Violation{},
		Infos:       []Violation{},
		Suggestions: []Suggestion{},
	}

	var suggestions []Suggestion
	for _, r := range e.applicable(in.Request.Type) {
		out := r.Validate(in)
		if out.Passed {
			continue
		}

		sev := out.Severity
		if !sev.valid() {
			sev = SeverityError
		}
		v := Violation{RuleID: r.ID(), Code: out.Code, Message: out.Message, Severity: sev}
		switch sev {
		case SeverityError:
			res.Valid = false
			res.Violations = append(res.Violations, v)
		case SeverityWarning:
			res.Warnings = append(res.Warnings, v)
		default:
			res.Infos = append(res.Infos, v)
		}

		for _, s := range out.Suggestions {
			suggestions = append(suggestions, Suggestion{RuleID: r.ID(), Priority: r.Priority(), Text: s})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority > suggestions[j].Priority
	})
	seen := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		if len(res.Suggestions) == MaxSuggestions {
			break
		}
		if seen[s.Text] {
			continue
		}
		seen[s.Text] = true
		res.Suggestions = append(res.Suggestions, s)
	}

	return res
}

func (e *Engine) Explain(in Input) []Explanation {
	rules := e.applicable(in.Request.Type)
	out := make([]Explanation, 0, len(rules))
	for _, r := range rules {
		out = append(out, Explanation{RuleID: r.ID(), Text: r.Explain(in)})
	}
	return out
}
