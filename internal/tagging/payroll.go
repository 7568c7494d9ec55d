package tagging

import (
	"strings"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// payrollAutoBits returns bits 0 (CATEGORY) and 1 (KEYWORD) of the payroll
// rule mask for an inflow. Bit 2 (CADENCE) is set separately by the
// post-pass cadence detector over the whole batch.
func payrollAutoBits(tx domain.Transaction) uint8 {
	if !tx.IsInflow() {
		return 0
	}

	var mask uint8

	if containsToken(tx.Category, "Payroll") || strings.HasPrefix(tx.CategoryID, payrollCategoryIDPrefix) {
		mask |= domain.PayrollRuleCategory
	}

	haystack := tx.Merchant + " " + tx.Description
	if payrollKeywords.MatchString(haystack) {
		mask |= domain.PayrollRuleKeyword
	}

	return mask
}
