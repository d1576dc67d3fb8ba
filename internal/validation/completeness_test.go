package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-management-backend/internal/models"
)

func TestCheckCompletenessAllFieldsMissing(t *testing.T) {
	items := []models.BillItem{{Ordinal: 7}}

	issues := CheckCompleteness(items)
	require.Len(t, issues, 4)

	bySeverity := map[string]int{}
	byField := map[string]Issue{}
	for _, iss := range issues {
		bySeverity[iss.Severity]++
		byField[iss.Field] = iss
		assert.Equal(t, 0, iss.RowIndex)
		assert.Equal(t, CategoryMissingData, iss.Category)
		assert.False(t, iss.AutoFixable)
		assert.Contains(t, iss.Message, "7", "message should reference the ordinal")
	}

	assert.Equal(t, 1, bySeverity[SeverityError])
	assert.Equal(t, 3, bySeverity[SeverityWarning])
	assert.Equal(t, SeverityError, byField["description"].Severity)
	assert.Equal(t, SeverityWarning, byField["unit"].Severity)
	assert.Equal(t, SeverityWarning, byField["quantity"].Severity)
	assert.Equal(t, SeverityWarning, byField["unit_price"].Severity)
}

func TestCheckCompleteness(t *testing.T) {
	tests := []struct {
		name       string
		item       models.BillItem
		wantFields []string
	}{
		{
			name:       "complete item passes",
			item:       models.BillItem{Ordinal: 1, Description: "formwork", Unit: "m2", Quantity: 3, UnitPrice: 12, TotalPrice: 36},
			wantFields: nil,
		},
		{
			name:       "whitespace-only description counts as missing",
			item:       models.BillItem{Ordinal: 2, Description: "   ", Unit: "m2", Quantity: 3, UnitPrice: 12},
			wantFields: []string{"description"},
		},
		{
			name:       "whitespace-only unit counts as missing",
			item:       models.BillItem{Ordinal: 3, Description: "rebar", Unit: "\t", Quantity: 3, UnitPrice: 12},
			wantFields: []string{"unit"},
		},
		{
			name:       "zero quantity and price flagged independently",
			item:       models.BillItem{Ordinal: 4, Description: "rebar", Unit: "kg"},
			wantFields: []string{"quantity", "unit_price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckCompleteness([]models.BillItem{tt.item})
			var fields []string
			for _, iss := range issues {
				fields = append(fields, iss.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
