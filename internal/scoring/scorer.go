package scoring

import "github.com/blinkdeveloper33/blinkscore-engine/internal/domain"

const lowConfidenceCutoff = 0.25

// Score maps a MetricVector onto its ten point contributions, applying the
// liquidity composite, deposit-multiplicity penalty, and the low
// payroll-confidence gate (spec.md §4.3). The metric vector itself is never
// mutated; gated metrics retain their values, only their point
// contributions are zeroed.
func Score(mv domain.MetricVector, tagged []domain.TaggedTransaction) domain.PointBreakdown {
	points := domain.PointBreakdown{
		HistoryDays:           pointsHistoryDays(mv.HistoryDays),
		OverdraftCount90:      pointsOverdraftCount90(mv.OverdraftCount90),
		PaycheckRegularity:    pointsPaycheckRegularity(mv.PaycheckRegularity),
		DaysSinceLastPaycheck: pointsDaysSinceLastPaycheck(mv.DaysSinceLastPaycheck),
		DebtLoad30:            pointsDebtLoad30(mv.DebtLoad30),
		NetCash30:             pointsNetCash30(mv.NetCash30),
		Volatility90:          pointsVolatility90(mv.Volatility90),
		MedianPaycheck:        pointsMedianPaycheck(mv.MedianPaycheck),
		LiquidityComposite:    liquidityComposite(mv.CleanBuffer7, mv.BufferVolatility),
		DepositMultiplicity:   depositMultiplicityPenalty(mv.DepositMultiplicity30),
	}

	if lowPayrollConfidence(tagged) {
		points.MedianPaycheck = 0
		points.PaycheckRegularity = 0
		points.DaysSinceLastPaycheck = 0
	}

	return points
}

// lowPayrollConfidence reports whether the average payroll_confidence_weight
// across all tagged payroll transactions falls below the gate cutoff.
// A user with no payroll transactions at all does not trigger the gate;
// their payroll-derived points are already 0 from null metrics.
func lowPayrollConfidence(tagged []domain.TaggedTransaction) bool {
	var sum float64
	var count int
	for _, tx := range tagged {
		if !tx.IsPayroll {
			continue
		}
		sum += tx.PayrollConfidenceWeight
		count++
	}
	if count == 0 {
		return false
	}
	return sum/float64(count) < lowConfidenceCutoff
}
