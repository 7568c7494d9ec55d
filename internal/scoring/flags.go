package scoring

import "github.com/blinkdeveloper33/blinkscore-engine/internal/domain"

// EmitFlags derives the three orthogonal early-warning flags from raw
// metrics (spec.md §4.6). A null value on either side of a rule forces that
// flag false.
func EmitFlags(mv domain.MetricVector) domain.Flags {
	return domain.Flags{
		OverdraftVolatility: valid2(mv.OverdraftCount90, mv.BufferVolatility) &&
			mv.OverdraftCount90.Value >= 3 && mv.BufferVolatility.Value > 100,
		CashCrunch: valid2(mv.NetCash30, mv.DaysSinceLastPaycheck) &&
			mv.NetCash30.Value < -200 && mv.DaysSinceLastPaycheck.Value > 10,
		DebtTrap: valid2(mv.DebtLoad30, mv.CleanBuffer7) &&
			mv.DebtLoad30.Value > 0.35 && mv.CleanBuffer7.Value < 50,
	}
}

func valid2(a, b domain.NullFloat) bool {
	return a.Valid && b.Valid
}
