package tagging

import (
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// Tagger classifies a batch of transactions. It holds no state between
// calls; Tag is a pure function of its arguments.
type Tagger struct{}

// New creates a Tagger.
func New() *Tagger {
	return &Tagger{}
}

// Tag runs the heuristic classification pass described in spec.md §4.1 over
// every transaction, then applies the cadence post-pass and any caller
// overrides. Malformed rows (unparseable date) are skipped and reported,
// never included in the returned slice.
func (t *Tagger) Tag(txs []domain.Transaction, overrides domain.Overrides, refDate time.Time) ([]domain.TaggedTransaction, []domain.MalformedTransactionError) {
	var skipped []domain.MalformedTransactionError
	clean := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.IsZero() {
			skipped = append(skipped, domain.MalformedTransactionError{TransactionID: tx.ID, Reason: "missing or unparseable posting date"})
			continue
		}
		clean = append(clean, tx)
	}

	cadenceHits := detectCadenceBit(clean, refDate)

	tagged := make([]domain.TaggedTransaction, len(clean))
	for i, tx := range clean {
		mask := payrollAutoBits(tx)
		if cadenceHits[i] {
			mask |= domain.PayrollRuleCadence
		}

		tt := domain.TaggedTransaction{
			Transaction:             tx,
			PayrollRuleMask:         mask,
			PayrollConfidenceWeight: domain.PayrollConfidenceForMask(mask),
		}
		tt.IsPayroll = tt.PayrollConfidenceWeight > 0
		tt.IsLoanPay = isLoanPayment(tx)
		tt.IsODFee = isOverdraftFee(tx)

		if override, ok := overrides[tx.ID]; ok {
			applyOverride(&tt, override)
		}

		tagged[i] = tt
	}

	return tagged, skipped
}
