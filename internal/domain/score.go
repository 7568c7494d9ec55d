package domain

// Recommendation is the engine's approve/reject decision.
type Recommendation string

const (
	RecommendationApproved Recommendation = "approved"
	RecommendationRejected Recommendation = "rejected"
)

// PointBreakdown carries the integer point contribution of each scored
// metric plus the two composite rules, so base_score's identity
// (base_score = sum of these fields) can be checked directly.
type PointBreakdown struct {
	HistoryDays            int `json:"historyDays"`
	OverdraftCount90       int `json:"overdraftCount90"`
	PaycheckRegularity     int `json:"paycheckRegularity"`
	DaysSinceLastPaycheck  int `json:"daysSinceLastPaycheck"`
	DebtLoad30             int `json:"debtLoad30"`
	NetCash30              int `json:"netCash30"`
	Volatility90           int `json:"volatility90"`
	MedianPaycheck         int `json:"medianPaycheck"`
	LiquidityComposite     int `json:"liquidityComposite"`
	DepositMultiplicity    int `json:"depositMultiplicityPenalty"`
}

// Sum returns base_score: the arithmetic sum of every point field.
func (p PointBreakdown) Sum() int {
	return p.HistoryDays + p.OverdraftCount90 + p.PaycheckRegularity +
		p.DaysSinceLastPaycheck + p.DebtLoad30 + p.NetCash30 +
		p.Volatility90 + p.MedianPaycheck + p.LiquidityComposite +
		p.DepositMultiplicity
}

// Flags are the three orthogonal early-warning signals.
type Flags struct {
	OverdraftVolatility bool `json:"odVol"`
	CashCrunch          bool `json:"cashCrunch"`
	DebtTrap            bool `json:"debtTrap"`
}

// ScoreResult is the engine's full output for one invocation.
type ScoreResult struct {
	Metrics            MetricVector         `json:"metrics"`
	Points             PointBreakdown       `json:"points"`
	BaseScore          int                  `json:"baseScore"`
	BlinkScore         float64              `json:"blinkScore"`
	Recommendation     Recommendation       `json:"recommendation"`
	Flags              Flags                `json:"flags"`
	TaggedTransactions []TaggedTransaction  `json:"taggedTransactions"`
}
