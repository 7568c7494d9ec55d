package tagging

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// cadenceTargets are tested in order; the first target with >= 2 matching
// gaps wins and stops further testing for that bucket (spec.md §4.1).
var cadenceTargets = []int{7, 14, 15}

const cadenceToleranceDays = 1
const cadenceBucketWidth = 2
const cadenceMinBucketSize = 3
const cadenceMinMatchingGaps = 2
const cadenceLookbackDays = 90

type inflowCandidate struct {
	index int
	date  time.Time
	amount decimal.Decimal
}

// detectCadenceBit returns the set of transaction indices (into the
// caller's full slice) whose payroll rule mask should gain the CADENCE bit.
func detectCadenceBit(txs []domain.Transaction, refDate time.Time) map[int]bool {
	cutoff := refDate.AddDate(0, 0, -(cadenceLookbackDays - 1))

	buckets := make(map[string][]inflowCandidate)
	for i, tx := range txs {
		if !tx.IsInflow() {
			continue
		}
		if tx.Date.Before(cutoff) || tx.Date.After(refDate) {
			continue
		}
		key := bucketKey(tx.Amount.Abs())
		buckets[key] = append(buckets[key], inflowCandidate{index: i, date: tx.Date, amount: tx.Amount.Abs()})
	}

	hits := make(map[int]bool)
	for _, cands := range buckets {
		if len(cands) < cadenceMinBucketSize {
			continue
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].date.Before(cands[j].date) })

		gaps := make([]int, 0, len(cands)-1)
		for i := 1; i < len(cands); i++ {
			days := int(cands[i].date.Sub(cands[i-1].date).Hours() / 24)
			gaps = append(gaps, days)
		}

		for _, target := range cadenceTargets {
			matches := 0
			for _, g := range gaps {
				if abs(g-target) <= cadenceToleranceDays {
					matches++
				}
			}
			if matches >= cadenceMinMatchingGaps {
				for _, c := range cands {
					hits[c.index] = true
				}
				break
			}
		}
	}

	return hits
}

// bucketKey rounds |amount| to the nearest $2 bin: round(|amount|/2)*2.
func bucketKey(absAmount decimal.Decimal) string {
	half := absAmount.Div(decimal.NewFromInt(cadenceBucketWidth))
	rounded := half.Round(0)
	bucket := rounded.Mul(decimal.NewFromInt(cadenceBucketWidth))
	return bucket.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
