package validation

// Issue categories.
const (
	CategoryMath        = "math"
	CategoryMissingData = "missing_data"
	CategoryStructure   = "structure"
	CategorySemantic    = "semantic"
)

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue is one validation finding against a bill item. RowIndex is the
// 0-based position in the validated list, not the item's ordinal. Accepted
// is mutated later by the accept/reject workflow, never by a validator.
type Issue struct {
	RowIndex       int    `json:"row_index"`
	Category       string `json:"category"`
	Severity       string `json:"severity"`
	Field          string `json:"field"`
	Message        string `json:"message"`
	CurrentValue   string `json:"current_value"`
	SuggestedValue string `json:"suggested_value"`
	AutoFixable    bool   `json:"auto_fixable"`
	Accepted       bool   `json:"accepted"`
}

// Result aggregates one validation run. Issues are ordered validator-first:
// math, then missing data, then structure. Counts are per-validator output
// lengths; SemanticIssues is reserved for a remote check and stays 0 here.
type Result struct {
	Issues          []Issue `json:"issues"`
	TotalChecked    int     `json:"total_checked"`
	MathErrors      int     `json:"math_errors"`
	MissingData     int     `json:"missing_data"`
	StructureIssues int     `json:"structure_issues"`
	SemanticIssues  int     `json:"semantic_issues"`
}
