package validation

import (
	"fmt"
	"strings"

	"construction-management-backend/internal/models"
)

// CheckCompleteness emits up to four independent issues per item: missing
// description (error), missing unit, zero quantity and zero unit price
// (warnings). Messages reference the item's ordinal, not its row index.
func CheckCompleteness(items []models.BillItem) []Issue {
	var issues []Issue
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			issues = append(issues, Issue{
				RowIndex:     i,
				Category:     CategoryMissingData,
				Severity:     SeverityError,
				Field:        "description",
				Message:      fmt.Sprintf("Item %d: description is missing", item.Ordinal),
				CurrentValue: item.Description,
			})
		}
		if strings.TrimSpace(item.Unit) == "" {
			issues = append(issues, Issue{
				RowIndex:     i,
				Category:     CategoryMissingData,
				Severity:     SeverityWarning,
				Field:        "unit",
				Message:      fmt.Sprintf("Item %d: unit of measure is missing", item.Ordinal),
				CurrentValue: item.Unit,
			})
		}
		if item.Quantity == 0 {
			issues = append(issues, Issue{
				RowIndex:     i,
				Category:     CategoryMissingData,
				Severity:     SeverityWarning,
				Field:        "quantity",
				Message:      fmt.Sprintf("Item %d: quantity is zero", item.Ordinal),
				CurrentValue: "0",
			})
		}
		if item.UnitPrice == 0 {
			issues = append(issues, Issue{
				RowIndex:     i,
				Category:     CategoryMissingData,
				Severity:     SeverityWarning,
				Field:        "unit_price",
				Message:      fmt.Sprintf("Item %d: unit price is zero", item.Ordinal),
				CurrentValue: "0",
			})
		}
	}
	return issues
}
