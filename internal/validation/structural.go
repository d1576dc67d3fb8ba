package validation

import (
	"fmt"
	"sort"
	"strconv"

	"construction-management-backend/internal/models"
)

// CheckStructure runs two independent passes over the bill: duplicate
// ordinals, then gaps in the sorted ordinal sequence. Duplicate issues come
// first in the returned slice.
func CheckStructure(items []models.BillItem) []Issue {
	issues := checkDuplicateOrdinals(items)
	return append(issues, checkOrdinalGaps(items)...)
}

func checkDuplicateOrdinals(items []models.BillItem) []Issue {
	var issues []Issue
	firstSeen := make(map[int]int, len(items))
	for i, item := range items {
		first, seen := firstSeen[item.Ordinal]
		if !seen {
			firstSeen[item.Ordinal] = i
			continue
		}
		issues = append(issues, Issue{
			RowIndex: i,
			Category: CategoryStructure,
			Severity: SeverityWarning,
			Field:    "ordinal",
			Message: fmt.Sprintf(
				"Item number %d is duplicated, first used at row %d",
				item.Ordinal, first+1,
			),
			CurrentValue:   strconv.Itoa(item.Ordinal),
			SuggestedValue: strconv.Itoa(i + 1),
			AutoFixable:    true,
		})
	}
	return issues
}

func checkOrdinalGaps(items []models.BillItem) []Issue {
	ordinals := make([]int, len(items))
	for i, item := range items {
		ordinals[i] = item.Ordinal
	}
	sort.Ints(ordinals)

	var issues []Issue
	for i := 1; i < len(ordinals); i++ {
		prev, next := ordinals[i-1], ordinals[i]
		if next-prev <= 1 {
			continue
		}
		// Attribute the gap to the first row holding the ordinal after it.
		// With duplicated ordinals this may point at an earlier duplicate;
		// the duplicate pass already surfaces that condition.
		row := 0
		for j, item := range items {
			if item.Ordinal == next {
				row = j
				break
			}
		}
		issues = append(issues, Issue{
			RowIndex: row,
			Category: CategoryStructure,
			Severity: SeverityInfo,
			Field:    "ordinal",
			Message: fmt.Sprintf(
				"Item numbering jumps from %d to %d", prev, next,
			),
			CurrentValue: strconv.Itoa(next),
		})
	}
	return issues
}
