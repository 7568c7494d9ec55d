// Package scoring maps a MetricVector onto integer point contributions,
// normalizes the sum into a Blink Score, and gates the approval decision,
// per spec.md §4.3-§4.6. Every function here is pure: no I/O.
package scoring

import "github.com/blinkdeveloper33/blinkscore-engine/internal/domain"

func pointsHistoryDays(h domain.NullFloat) int {
	if !h.Valid {
		return 0
	}
	switch {
	case h.Value >= 365:
		return 10
	case h.Value >= 180:
		return 5
	default:
		return 0
	}
}

func pointsOverdraftCount90(f domain.NullFloat) int {
	if !f.Valid {
		return 0
	}
	switch {
	case f.Value == 0:
		return 20
	case f.Value <= 2:
		return 5
	default:
		return -15
	}
}

func pointsPaycheckRegularity(sigma domain.NullFloat) int {
	if !sigma.Valid {
		return 0
	}
	switch {
	case sigma.Value <= 2:
		return 25
	case sigma.Value <= 5:
		return 10
	default:
		return -10
	}
}

func pointsDaysSinceLastPaycheck(d domain.NullFloat) int {
	if !d.Valid {
		return 0
	}
	switch {
	case d.Value <= 7:
		return 10
	case d.Value <= 14:
		return 0
	default:
		return -10
	}
}

func pointsDebtLoad30(r domain.NullFloat) int {
	if !r.Valid {
		return 0
	}
	switch {
	case r.Value <= 0.15:
		return 20
	case r.Value <= 0.30:
		return 5
	default:
		return -15
	}
}

func pointsNetCash30(n domain.NullFloat) int {
	if !n.Valid {
		return 0
	}
	if n.Value >= 0 {
		return 10
	}
	return -10
}

func pointsVolatility90(v domain.NullFloat) int {
	if !v.Valid {
		return 0
	}
	switch {
	case v.Value <= 0.40:
		return 10
	case v.Value <= 0.70:
		return 0
	default:
		return -10
	}
}

func pointsMedianPaycheck(p domain.NullFloat) int {
	if !p.Valid {
		return 0
	}
	switch {
	case p.Value >= 1500:
		return 20
	case p.Value >= 1000:
		return 10
	case p.Value >= 600:
		return 0
	default:
		return -10
	}
}

// liquidityComposite implements the C/B composite rule (spec.md §4.3), where
// C is clean_buffer7 and B is buffer_volatility.
func liquidityComposite(c, b domain.NullFloat) int {
	if !c.Valid || c.Value < 100 {
		return -20
	}
	if c.Value >= 300 {
		if !b.Valid {
			return 25
		}
		if b.Value <= 50 {
			return 40
		}
		return 25
	}
	return 10
}

// depositMultiplicityPenalty applies the -15 penalty when deposit_multiplicity30 > 4.
func depositMultiplicityPenalty(dm domain.NullFloat) int {
	if dm.Valid && dm.Value > 4 {
		return -15
	}
	return 0
}
