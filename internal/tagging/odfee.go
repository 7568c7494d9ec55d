package tagging

import "github.com/blinkdeveloper33/blinkscore-engine/internal/domain"

// isOverdraftFee classifies a transaction as an overdraft/NSF fee.
// Not overridable (spec.md §3).
func isOverdraftFee(tx domain.Transaction) bool {
	if tx.CategoryID == overdraftCategoryID {
		return true
	}
	haystack := tx.Merchant + " " + tx.Description
	return overdraftKeywords.MatchString(haystack)
}
