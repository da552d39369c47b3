package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionDerive(t *testing.T) {
	tests := []struct {
		name       string
		amountKg   float64
		pricePerKg float64
		wantTotal  float64
		wantCoins  int
	}{
		{"fractional total is not rounded", 0.333, 3, 0.999, 0},
		{"coins floor the weight", 2.9, 15, 43.5, 2},
		{"donation at zero price", 5, 0, 0, 5},
		{"exact decimal product", 0.1, 0.2, 0.02, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{AmountKg: tt.amountKg, PricePerKg: tt.pricePerKg}
			tx.Derive()
			assert.Equal(t, tt.wantTotal, tx.TotalAmount)
			assert.Equal(t, tt.wantCoins, tx.GreenCoinsEarned)
		})
	}
}

func TestTransactionBeforeSave_OverwritesStaleTotals(t *testing.T) {
	tx := &Transaction{AmountKg: 1.25, PricePerKg: 8, TotalAmount: 999, GreenCoinsEarned: 42}

	assert.NoError(t, tx.BeforeSave(nil))
	assert.Equal(t, 10.0, tx.TotalAmount)
	assert.Equal(t, 1, tx.GreenCoinsEarned)
}
