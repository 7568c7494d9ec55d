package aggregate

import (
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// dailyNetCashMap pre-initializes every day in [start, refDate] to 0, then
// accumulates each transaction's signed contribution (inflow positive,
// outflow negative) onto its posting day, per spec.md §4.2.
func dailyNetCashMap(txs []domain.TaggedTransaction, start, refDate time.Time) map[time.Time]float64 {
	start, refDate = truncateDay(start), truncateDay(refDate)

	m := make(map[time.Time]float64)
	for d := start; !d.After(refDate); d = d.AddDate(0, 0, 1) {
		m[d] = 0
	}

	for _, tx := range txs {
		d := truncateDay(tx.Date)
		if d.Before(start) || d.After(refDate) {
			continue
		}
		amt, _ := tx.Amount.Float64()
		// inflow (amount<0) contributes +|amount|, outflow contributes -amount.
		m[d] += -amt
	}
	return m
}

// sumWindow sums the net-cash map over an inclusive window.
func sumWindow(m map[time.Time]float64, w Window) float64 {
	sum := 0.0
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		sum += m[d]
	}
	return sum
}

// valuesInWindow returns the daily net-cash values within an inclusive
// window, in chronological order, restricted to days present in the map
// (i.e. not before the map's pre-initialized start).
func valuesInWindow(m map[time.Time]float64, w Window) []float64 {
	var out []float64
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if v, ok := m[d]; ok {
			out = append(out, v)
		}
	}
	return out
}
