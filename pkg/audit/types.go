// Package audit checks generated transactions against the dataset invariants.
package audit

import (
	"fmt"

	"github.com/TFMV/salesgen/pkg/sales"
)

// maxMessagesPerRule caps the messages kept per rule. Violations past the
// cap are still counted.
const maxMessagesPerRule = 20

// Rule defines an interface for per-transaction invariants.
type Rule interface {
	// Check returns a non-nil error when tx violates the rule.
	Check(tx sales.Transaction) error

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string
}

// Result represents the outcome of an audit.
type Result struct {
	// Valid indicates whether every row passed every rule.
	Valid bool `json:"valid"`

	// Rows is the number of transactions audited.
	Rows int `json:"rows"`

	// Violations counts failed rows per rule name.
	Violations map[string]int `json:"violations,omitempty"`

	// Errors holds up to maxMessagesPerRule messages per rule name.
	Errors map[string][]string `json:"errors,omitempty"`
}

func newResult() Result {
	return Result{
		Valid:      true,
		Violations: make(map[string]int),
		Errors:     make(map[string][]string),
	}
}

func (r *Result) add(rule string, row int, err error) {
	r.Valid = false
	r.Violations[rule]++
	if len(r.Errors[rule]) < maxMessagesPerRule {
		r.Errors[rule] = append(r.Errors[rule], fmt.Sprintf("row %d: %v", row, err))
	}
}

// TotalViolations sums the violations of all rules.
func (r Result) TotalViolations() int {
	n := 0
	for _, c := range r.Violations {
		n += c
	}
	return n
}

// AddDatasetViolation records a failure that concerns the whole dataset
// rather than a single row.
func (r *Result) AddDatasetViolation(rule, msg string) {
	if r.Violations == nil {
		r.Violations = make(map[string]int)
		r.Errors = make(map[string][]string)
	}
	r.Valid = false
	r.Violations[rule]++
	r.Errors[rule] = append(r.Errors[rule], msg)
}
