package aggregate

import (
	"strings"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// counterpartyKey normalizes a transaction to its counterparty identity for
// deposit_multiplicity30: merchant name if present, else the first 16
// characters of the description, else "Unknown"; trimmed and upper-cased.
func counterpartyKey(tx domain.Transaction) string {
	var raw string
	switch {
	case strings.TrimSpace(tx.Merchant) != "":
		raw = tx.Merchant
	case strings.TrimSpace(tx.Description) != "":
		raw = tx.Description
		if len(raw) > 16 {
			raw = raw[:16]
		}
	default:
		raw = "Unknown"
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}
