package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-management-backend/internal/models"
)

func item(ordinal int, qty, unitPrice, total float64) models.BillItem {
	return models.BillItem{
		Ordinal:     ordinal,
		Description: "excavation",
		Unit:        "m3",
		Quantity:    qty,
		UnitPrice:   unitPrice,
		TotalPrice:  total,
	}
}

func TestCheckArithmetic(t *testing.T) {
	tests := []struct {
		name       string
		items      []models.BillItem
		wantCount  int
		wantRow    int
		wantSugg   string
		wantCurr   string
	}{
		{
			name:      "exact total produces no issue",
			items:     []models.BillItem{item(1, 10, 2.5, 25)},
			wantCount: 0,
		},
		{
			name:      "difference within tolerance is accepted",
			items:     []models.BillItem{item(1, 10, 2.5, 25.009)},
			wantCount: 0,
		},
		{
			name:      "difference beyond tolerance is flagged",
			items:     []models.BillItem{item(1, 10, 2.5, 26)},
			wantCount: 1,
			wantRow:   0,
			wantSugg:  "25.00",
			wantCurr:  "26.00",
		},
		{
			name: "only the wrong row is flagged",
			items: []models.BillItem{
				item(1, 2, 3, 6),
				item(2, 4, 5, 21),
				item(3, 1, 1, 1),
			},
			wantCount: 1,
			wantRow:   1,
			wantSugg:  "20.00",
			wantCurr:  "21.00",
		},
		{
			name:      "zero quantity with nonzero total",
			items:     []models.BillItem{item(1, 0, 100, 50)},
			wantCount: 1,
			wantRow:   0,
			wantSugg:  "0.00",
			wantCurr:  "50.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckArithmetic(tt.items)
			require.Len(t, issues, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			iss := issues[0]
			assert.Equal(t, tt.wantRow, iss.RowIndex)
			assert.Equal(t, CategoryMath, iss.Category)
			assert.Equal(t, SeverityError, iss.Severity)
			assert.Equal(t, "total_price", iss.Field)
			assert.Equal(t, tt.wantCurr, iss.CurrentValue)
			assert.Equal(t, tt.wantSugg, iss.SuggestedValue)
			assert.True(t, iss.AutoFixable)
			assert.False(t, iss.Accepted)
		})
	}
}

func TestCheckArithmeticAtMostOneIssuePerItem(t *testing.T) {
	items := []models.BillItem{
		item(1, 3, 3, 100),
		item(2, 7, 2, 0),
	}
	issues := CheckArithmetic(items)
	require.Len(t, issues, 2)
	assert.Equal(t, 0, issues[0].RowIndex)
	assert.Equal(t, 1, issues[1].RowIndex)
}
