package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

const (
	balanceLookbackDays = 10
	bufferWindowDays    = 7
)

// forwardFillBuffer builds the 7 daily end-of-day balances for
// [T0-6, T0], using the 10-day historical lookup window plus the current
// balance at T0 per spec.md §4.2. Gaps are filled with the nearest known
// balance on a LATER day (the glossary's definition of forward-fill, which
// this spec deliberately preserves rather than "fixing"). Returns ok=false
// when no current balance was supplied.
func forwardFillBuffer(balances []domain.DailyBalance, refDate time.Time, currentBalance *decimal.Decimal) (values []float64, ok bool) {
	if currentBalance == nil {
		return nil, false
	}

	refDate = truncateDay(refDate)
	lookupStart := refDate.AddDate(0, 0, -balanceLookbackDays)
	lookupEnd := refDate.AddDate(0, 0, -1)

	byDay := make(map[time.Time]float64)
	for _, b := range balances {
		d := truncateDay(b.Date)
		if d.Before(lookupStart) || d.After(lookupEnd) {
			continue
		}
		f, _ := b.Balance.Float64()
		byDay[d] = f
	}
	curr, _ := currentBalance.Float64()
	byDay[refDate] = curr

	// Walk backward from T0, carrying the most recently seen (later-day) value.
	reversed := make([]float64, 0, bufferWindowDays)
	lastSeen := curr
	for i := 0; i < bufferWindowDays; i++ {
		day := refDate.AddDate(0, 0, -i)
		if v, found := byDay[day]; found {
			lastSeen = v
		}
		reversed = append(reversed, lastSeen)
	}

	// Reverse to chronological order.
	values = make([]float64, bufferWindowDays)
	for i, v := range reversed {
		values[bufferWindowDays-1-i] = v
	}
	return values, true
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
