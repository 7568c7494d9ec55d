package tagging

import "github.com/blinkdeveloper33/blinkscore-engine/internal/domain"

// applyOverride replaces is_payroll/is_loanpay with the caller-supplied
// value when present, and forces the payroll confidence weight/mask
// consistently (spec.md §3, §4.1). Overdraft-fee tagging is never
// overridable.
func applyOverride(tagged *domain.TaggedTransaction, override domain.Override) {
	if override.IsPayroll != nil {
		tagged.IsPayroll = *override.IsPayroll
		if *override.IsPayroll {
			tagged.PayrollConfidenceWeight = 1.0
		} else {
			tagged.PayrollConfidenceWeight = 0.0
			tagged.PayrollRuleMask = 0
		}
	}
	if override.IsLoanPay != nil {
		tagged.IsLoanPay = *override.IsLoanPay
	}
}
