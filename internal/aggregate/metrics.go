package aggregate

import (
	"math"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

// payrollPoint is a payroll transaction's date and confidence weight,
// used by paycheckRegularityOf's consecutive-gap analysis.
type payrollPoint struct {
	date   time.Time
	weight float64
}

const reliablePayrollWeight = 0.5

// ComputeMetricVector derives the eleven-field behavioral MetricVector from
// a batch of tagged transactions and a daily balance series, per spec.md
// §4.2. It is a pure function: no I/O, no mutation of its inputs.
func ComputeMetricVector(tagged []domain.TaggedTransaction, balances []domain.DailyBalance, ctx domain.ReportContext) domain.MetricVector {
	refDate := truncateDay(ctx.ReferenceDate)

	var mv domain.MetricVector

	historyDays, earliest, hasHistory := historyDaysOf(tagged, refDate)
	if hasHistory {
		mv.HistoryDays = domain.Float(float64(historyDays))
	}

	w30 := NewWindow(refDate, 30)
	w90 := NewWindow(refDate, 90)
	w180 := NewWindow(refDate, 180)

	mv.MedianPaycheck = medianPaycheckOf(tagged)
	mv.PaycheckRegularity = paycheckRegularityOf(tagged, w180)
	mv.DaysSinceLastPaycheck = daysSinceLastPaycheckOf(tagged, refDate)
	mv.OverdraftCount90 = overdraftCount90Of(tagged, w90)

	buffer, bufOK := forwardFillBuffer(balances, refDate, ctx.CurrentBalance)
	if bufOK {
		mv.CleanBuffer7 = domain.Float(minOf(buffer))
		if v, ok := sampleStdDev(buffer); ok {
			mv.BufferVolatility = domain.Float(v)
		}
	}

	mv.DepositMultiplicity30 = depositMultiplicity30Of(tagged, w30)

	var netCashStart time.Time
	if hasHistory {
		netCashStart = earliest
	} else {
		netCashStart = refDate
	}
	netCash := dailyNetCashMap(tagged, netCashStart, refDate)

	mv.NetCash30 = domain.Float(sumWindow(netCash, w30))
	mv.DebtLoad30 = debtLoad30Of(tagged, w30)
	mv.Volatility90 = volatility90Of(netCash, w90)

	return mv
}

func historyDaysOf(tagged []domain.TaggedTransaction, refDate time.Time) (days int, earliest time.Time, ok bool) {
	if len(tagged) == 0 {
		return 0, time.Time{}, false
	}
	earliest = truncateDay(tagged[0].Date)
	for _, tx := range tagged[1:] {
		d := truncateDay(tx.Date)
		if d.Before(earliest) {
			earliest = d
		}
	}
	return daySpan(earliest, refDate), earliest, true
}

func medianPaycheckOf(tagged []domain.TaggedTransaction) domain.NullFloat {
	var samples []weightedSample
	for _, tx := range tagged {
		if !tx.IsPayroll {
			continue
		}
		amt, _ := tx.Amount.Abs().Float64()
		samples = append(samples, weightedSample{value: amt, weight: tx.PayrollConfidenceWeight})
	}
	v, ok := weightedMedian(samples)
	if !ok {
		return domain.NullFloatZero
	}
	return domain.Float(v)
}

func paycheckRegularityOf(tagged []domain.TaggedTransaction, w180 Window) domain.NullFloat {
	var payrolls []payrollPoint
	for _, tx := range tagged {
		if !tx.IsPayroll || !w180.Contains(tx.Date) {
			continue
		}
		payrolls = append(payrolls, payrollPoint{date: truncateDay(tx.Date), weight: tx.PayrollConfidenceWeight})
	}
	if len(payrolls) < 2 {
		return domain.NullFloatZero
	}
	sortByDate(payrolls)

	var gaps []weightedSample
	for i := 1; i < len(payrolls); i++ {
		gap := daySpan(payrolls[i-1].date, payrolls[i].date) - 1
		w := payrolls[i-1].weight
		if payrolls[i].weight < w {
			w = payrolls[i].weight
		}
		if w > 0 {
			gaps = append(gaps, weightedSample{value: float64(gap), weight: w})
		}
	}
	if len(gaps) == 0 {
		return domain.NullFloatZero
	}
	return domain.Float(weightedStdDevAllowSingle(gaps))
}

func sortByDate(payrolls []payrollPoint) {
	for i := 1; i < len(payrolls); i++ {
		for j := i; j > 0 && payrolls[j].date.Before(payrolls[j-1].date); j-- {
			payrolls[j], payrolls[j-1] = payrolls[j-1], payrolls[j]
		}
	}
}

// weightedStdDevAllowSingle is the same biased weighted std-dev formula as
// weightedStdDev, but permits a single positive-weight sample (result 0)
// since paycheck_regularity only requires "no positive-weight gaps", not a
// minimum of two, per spec.md §4.2.
func weightedStdDevAllowSingle(samples []weightedSample) float64 {
	totalWeight, weightedSum := 0.0, 0.0
	for _, s := range samples {
		totalWeight += s.weight
		weightedSum += s.weight * s.value
	}
	if totalWeight == 0 {
		return 0
	}
	mean := weightedSum / totalWeight

	variance := 0.0
	for _, s := range samples {
		d := s.value - mean
		variance += s.weight * d * d
	}
	variance /= totalWeight
	return math.Sqrt(variance)
}

func daysSinceLastPaycheckOf(tagged []domain.TaggedTransaction, refDate time.Time) domain.NullFloat {
	var latest time.Time
	found := false
	for _, tx := range tagged {
		if !tx.IsPayroll || tx.PayrollConfidenceWeight < reliablePayrollWeight {
			continue
		}
		d := truncateDay(tx.Date)
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	if !found {
		return domain.NullFloatZero
	}
	days := int(refDate.Sub(latest).Hours() / 24)
	return domain.Float(float64(days))
}

func overdraftCount90Of(tagged []domain.TaggedTransaction, w90 Window) domain.NullFloat {
	count := 0
	for _, tx := range tagged {
		if tx.IsODFee && w90.Contains(tx.Date) {
			count++
		}
	}
	return domain.Float(float64(count))
}

func depositMultiplicity30Of(tagged []domain.TaggedTransaction, w30 Window) domain.NullFloat {
	counterparties := make(map[string]struct{})
	payrollCount := 0
	for _, tx := range tagged {
		if !w30.Contains(tx.Date) {
			continue
		}
		if tx.IsPayroll {
			payrollCount++
		}
		if tx.IsInflow() {
			counterparties[counterpartyKey(tx.Transaction)] = struct{}{}
		}
	}
	denom := payrollCount
	if denom < 1 {
		denom = 1
	}
	return domain.Float(float64(len(counterparties)) / float64(denom))
}

func debtLoad30Of(tagged []domain.TaggedTransaction, w30 Window) domain.NullFloat {
	var loanOut, inflowMag float64
	for _, tx := range tagged {
		if !w30.Contains(tx.Date) {
			continue
		}
		amt, _ := tx.Amount.Float64()
		if tx.IsLoanPay && tx.IsOutflow() {
			loanOut += amt
		}
		if tx.IsInflow() {
			inflowMag += -amt
		}
	}
	if inflowMag == 0 {
		return domain.NullFloatZero
	}
	return domain.Float(loanOut / inflowMag)
}

func volatility90Of(netCash map[time.Time]float64, w90 Window) domain.NullFloat {
	values := valuesInWindow(netCash, w90)
	if len(values) < 2 {
		return domain.NullFloatZero
	}
	stddev, _ := populationStdDev(values)
	mean := meanAbs(values)

	if stddev == 0 && mean == 0 {
		return domain.Float(0)
	}
	if mean < 0.01 && stddev > 0 {
		return domain.NullFloatZero
	}
	return domain.Float(stddev / mean)
}
