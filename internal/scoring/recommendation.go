package scoring

import "github.com/blinkdeveloper33/blinkscore-engine/internal/domain"

// Recommend applies the three-tier history-length-dependent threshold gate
// (spec.md §4.5). Callers are expected to have already rejected
// historyDays < 90 with an InsufficientHistory outcome before reaching here.
func Recommend(blinkScore float64, historyDays int) domain.Recommendation {
	switch {
	case historyDays >= 90 && historyDays <= 179:
		if blinkScore >= 88 {
			return domain.RecommendationApproved
		}
	case historyDays >= 180 && historyDays <= 364:
		if blinkScore >= 80 {
			return domain.RecommendationApproved
		}
	case historyDays >= 365:
		if blinkScore >= 73 {
			return domain.RecommendationApproved
		}
	}
	return domain.RecommendationRejected
}
