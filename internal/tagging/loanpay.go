package tagging

import (
	"strings"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// isLoanPayment classifies an outflow as a loan/credit-card payment.
// Rules are tried in priority order; the first match wins (spec.md §4.1).
func isLoanPayment(tx domain.Transaction) bool {
	if !tx.IsOutflow() {
		return false
	}

	if containsAny(tx.Category, "Loan Payment", "Credit Card Payment") ||
		strings.HasPrefix(tx.CategoryID, loanCategoryIDPrefix) {
		return true
	}

	desc := tx.Merchant + " " + tx.Description
	if loanKeywords.MatchString(desc) {
		return true
	}

	if paymentKeyword.MatchString(desc) && !p2pExclusionRe.MatchString(desc) {
		return true
	}

	return false
}
