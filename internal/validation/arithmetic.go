package validation

import (
	"fmt"
	"math"

	"construction-management-backend/internal/models"
)

// priceTolerance is the absolute difference allowed between the stated total
// and quantity times unit price before an item is flagged.
const priceTolerance = 0.01

// CheckArithmetic flags every item whose stated total disagrees with
// quantity × unit price beyond the tolerance. At most one issue per item,
// always an auto-fixable error suggesting the computed total.
func CheckArithmetic(items []models.BillItem) []Issue {
	var issues []Issue
	for i, item := range items {
		expected := item.Quantity * item.UnitPrice
		if math.Abs(item.TotalPrice-expected) <= priceTolerance {
			continue
		}
		issues = append(issues, Issue{
			RowIndex: i,
			Category: CategoryMath,
			Severity: SeverityError,
			Field:    "total_price",
			Message: fmt.Sprintf(
				"Item %d: total price %.2f does not equal quantity × unit price (%.2f)",
				item.Ordinal, item.TotalPrice, expected,
			),
			CurrentValue:   fmt.Sprintf("%.2f", item.TotalPrice),
			SuggestedValue: fmt.Sprintf("%.2f", expected),
			AutoFixable:    true,
		})
	}
	return issues
}
