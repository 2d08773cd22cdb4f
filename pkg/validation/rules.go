package validation

import (
	"github.com/go-playground/validator/v10"
)

// Rule is a single validator tag applied to one field, with the message
// reported when it fails.
type Rule struct {
	Field   string
	Tag     string
	Message string
}

// Violation describes one failed rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

type Violations []Violation

// Messages returns the violation messages in order.
func (vs Violations) Messages() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

// For returns the messages reported for field.
func (vs Violations) For(field string) []string {
	var out []string
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v.Message)
		}
	}
	return out
}

// Check evaluates every rule against values[rule.Field]. Rules are independent:
// a failing rule never hides a later rule on the same field.
func Check(v *validator.Validate, rules []Rule, values map[string]string) Violations {
	var out Violations
	for _, r := range rules {
		if err := v.Var(values[r.Field], r.Tag); err != nil {
			out = append(out, Violation{Field: r.Field, Message: r.Message})
		}
	}
	return out
}
