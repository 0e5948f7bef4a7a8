package audit

import (
	"github.com/TFMV/salesgen/pkg/sales"
)

// Auditor runs a set of rules over transactions.
type Auditor struct {
	rules []Rule
}

// NewAuditor creates an auditor with no rules.
func NewAuditor() *Auditor {
	return &Auditor{}
}

// NewDatasetAuditor creates an auditor with every dataset invariant. Price
// tiers are checked against mode; pass an empty mode to skip that check.
func NewDatasetAuditor(mode sales.PricingMode) *Auditor {
	a := NewAuditor()
	a.AddRule(TransactionIDRule{})
	a.AddRule(YearRule)
	a.AddRule(AgeRule)
	a.AddRule(LocationRule{})
	a.AddRule(BrandSegmentRule{})
	a.AddRule(CategoryRule{})
	a.AddRule(QuantityRule)
	a.AddRule(TotalAmountRule{})
	a.AddRule(ReturnRule{})
	if mode != "" {
		a.AddRule(PriceTierRule{Mode: mode})
	}
	return a
}

// AddRule adds a rule to the auditor.
func (a *Auditor) AddRule(rule Rule) {
	a.rules = append(a.rules, rule)
}

// Rules returns the configured rules.
func (a *Auditor) Rules() []Rule {
	return a.rules
}

// Audit checks every transaction against every rule. Row numbers in
// messages are zero-based, matching the table index.
func (a *Auditor) Audit(txs []sales.Transaction) Result {
	result := newResult()
	result.Rows = len(txs)

	for i, tx := range txs {
		for _, rule := range a.rules {
			if err := rule.Check(tx); err != nil {
				result.add(rule.Name(), i, err)
			}
		}
	}

	return result
}
