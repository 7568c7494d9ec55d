package tagging

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
)

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTag_SignDiscipline(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "1", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(100), Merchant: "ADP PAYROLL"},  // outflow, never payroll
		{ID: "2", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(-100), Merchant: "RANDOM SHOP"}, // inflow, no payroll signal
	}
	tagged, skipped := New().Tag(txs, nil, mustDate("2025-05-01"))
	assert.Empty(t, skipped)
	assert.False(t, tagged[0].IsPayroll, "outflow must never be tagged payroll")
	assert.False(t, tagged[1].IsPayroll)
}

func TestTag_PayrollConfidenceQuantization(t *testing.T) {
	// Category + keyword match -> 2 bits -> 0.5 weight.
	txs := []domain.Transaction{
		{
			ID: "1", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(-2000),
			Merchant: "ADP PAYROLL", CategoryID: "21006000",
		},
	}
	tagged, _ := New().Tag(txs, nil, mustDate("2025-05-01"))
	assert.InDelta(t, 0.5, tagged[0].PayrollConfidenceWeight, 1e-9)
	assert.True(t, tagged[0].IsPayroll)
}

func TestTag_CadenceDetection(t *testing.T) {
	// 3 biweekly deposits of $2000 with no category or keyword signal;
	// cadence alone should set the CADENCE bit on all 3 once detected.
	var txs []domain.Transaction
	start := mustDate("2025-03-01")
	for i := 0; i < 3; i++ {
		txs = append(txs, domain.Transaction{
			ID:     string(rune('a' + i)),
			Date:   start.AddDate(0, 0, 14*i),
			Amount: decimal.NewFromInt(-2000),
		})
	}
	tagged, _ := New().Tag(txs, nil, mustDate("2025-05-01"))
	for _, tt := range tagged {
		assert.NotZero(t, tt.PayrollRuleMask&domain.PayrollRuleCadence, "cadence bit should be set")
	}
}

func TestTag_LoanPaymentP2PExclusion(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "1", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(50), Description: "ZELLE PAYMENT TO FRIEND"},
		{ID: "2", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(300), Description: "LOAN PAYMENT TO CAPITAL ONE"},
	}
	tagged, _ := New().Tag(txs, nil, mustDate("2025-05-01"))
	assert.False(t, tagged[0].IsLoanPay, "zelle payment must be excluded")
	assert.True(t, tagged[1].IsLoanPay)
}

func TestTag_OverdraftFee(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "1", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(35), CategoryID: "22001000"},
		{ID: "2", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(35), Description: "NSF FEE CHARGED"},
	}
	tagged, _ := New().Tag(txs, nil, mustDate("2025-05-01"))
	assert.True(t, tagged[0].IsODFee)
	assert.True(t, tagged[1].IsODFee)
}

func TestTag_OverridePrecedence(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "1", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(-2000), Merchant: "ADP PAYROLL", CategoryID: "21006000"},
	}
	falseVal := false
	overrides := domain.Overrides{"1": {IsPayroll: &falseVal}}
	tagged, _ := New().Tag(txs, overrides, mustDate("2025-05-01"))
	assert.False(t, tagged[0].IsPayroll)
	assert.Equal(t, 0.0, tagged[0].PayrollConfidenceWeight)
	assert.Equal(t, uint8(0), tagged[0].PayrollRuleMask)
}

func TestTag_MalformedSkipped(t *testing.T) {
	txs := []domain.Transaction{
		{ID: "bad", Amount: decimal.NewFromInt(10)}, // zero Date
		{ID: "ok", Date: mustDate("2025-04-01"), Amount: decimal.NewFromInt(10)},
	}
	tagged, skipped := New().Tag(txs, nil, mustDate("2025-05-01"))
	assert.Len(t, skipped, 1)
	assert.Len(t, tagged, 1)
	assert.Equal(t, "ok", tagged[0].ID)
}

func TestTag_CadenceIdempotence(t *testing.T) {
	// Running the tagger's cadence detector twice on its own tagged output
	// (re-fed as plain transactions) must yield the same mask.
	var txs []domain.Transaction
	start := mustDate("2025-03-01")
	for i := 0; i < 4; i++ {
		txs = append(txs, domain.Transaction{
			ID:     string(rune('a' + i)),
			Date:   start.AddDate(0, 0, 14*i),
			Amount: decimal.NewFromInt(-1500),
		})
	}
	first, _ := New().Tag(txs, nil, mustDate("2025-05-01"))

	var again []domain.Transaction
	for _, tt := range first {
		again = append(again, tt.Transaction)
	}
	second, _ := New().Tag(again, nil, mustDate("2025-05-01"))

	for i := range first {
		assert.Equal(t, first[i].PayrollRuleMask, second[i].PayrollRuleMask)
		assert.Equal(t, first[i].IsPayroll, second[i].IsPayroll)
	}
}
