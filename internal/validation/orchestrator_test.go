package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-management-backend/internal/models"
)

func TestValidateAggregation(t *testing.T) {
	items := []models.BillItem{
		{Ordinal: 1, Description: "excavation", Unit: "m3", Quantity: 10, UnitPrice: 5, TotalPrice: 50},
		{Ordinal: 2, Description: "", Unit: "m3", Quantity: 10, UnitPrice: 5, TotalPrice: 99}, // math + missing description
		{Ordinal: 2, Description: "backfill", Unit: "m3", Quantity: 1, UnitPrice: 1, TotalPrice: 1}, // duplicate ordinal
		{Ordinal: 5, Description: "compaction", Unit: "m2", Quantity: 2, UnitPrice: 3, TotalPrice: 6}, // gap 2→5
	}

	res := Validate(items)

	assert.Equal(t, 4, res.TotalChecked)
	assert.Equal(t, 1, res.MathErrors)
	assert.Equal(t, 1, res.MissingData)
	assert.Equal(t, 2, res.StructureIssues)
	assert.Equal(t, 0, res.SemanticIssues)
	require.Len(t, res.Issues, 4)

	// Fixed concatenation order: math, missing data, structure.
	assert.Equal(t, CategoryMath, res.Issues[0].Category)
	assert.Equal(t, CategoryMissingData, res.Issues[1].Category)
	assert.Equal(t, CategoryStructure, res.Issues[2].Category)
	assert.Equal(t, CategoryStructure, res.Issues[3].Category)
}

func TestValidateIdempotent(t *testing.T) {
	items := []models.BillItem{
		{Ordinal: 1, Description: "", Quantity: 0, UnitPrice: 0, TotalPrice: 3},
		{Ordinal: 1, Description: "x", Unit: "pc", Quantity: 2, UnitPrice: 2, TotalPrice: 4},
		{Ordinal: 9, Description: "y", Unit: "pc", Quantity: 1, UnitPrice: 1, TotalPrice: 1},
	}
	first := Validate(items)
	second := Validate(items)
	assert.Equal(t, first, second)
}

func TestValidateEmptyBill(t *testing.T) {
	res := Validate(nil)
	assert.Equal(t, 0, res.TotalChecked)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 0, res.MathErrors)
	assert.Equal(t, 0, res.MissingData)
	assert.Equal(t, 0, res.StructureIssues)
}
