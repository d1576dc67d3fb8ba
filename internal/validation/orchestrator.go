package validation

import "construction-management-backend/internal/models"

// Validate runs all validators over the bill and aggregates their findings.
// Pure and deterministic: identical input yields an identical result. Issue
// order is fixed (math, missing data, structure) and the per-category counts
// are the lengths of each validator's own output.
func Validate(items []models.BillItem) Result {
	mathIssues := CheckArithmetic(items)
	missingIssues := CheckCompleteness(items)
	structureIssues := CheckStructure(items)

	issues := make([]Issue, 0, len(mathIssues)+len(missingIssues)+len(structureIssues))
	issues = append(issues, mathIssues...)
	issues = append(issues, missingIssues...)
	issues = append(issues, structureIssues...)

	return Result{
		Issues:          issues,
		TotalChecked:    len(items),
		MathErrors:      len(mathIssues),
		MissingData:     len(missingIssues),
		StructureIssues: len(structureIssues),
		SemanticIssues:  0,
	}
}
