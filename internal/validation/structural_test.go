package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-management-backend/internal/models"
)

func billWithOrdinals(ordinals ...int) []models.BillItem {
	items := make([]models.BillItem, len(ordinals))
	for i, o := range ordinals {
		items[i] = item(o, 1, 1, 1)
	}
	return items
}

func TestCheckStructureDuplicates(t *testing.T) {
	issues := CheckStructure(billWithOrdinals(1, 2, 2, 3))
	require.Len(t, issues, 1)

	iss := issues[0]
	assert.Equal(t, 2, iss.RowIndex)
	assert.Equal(t, CategoryStructure, iss.Category)
	assert.Equal(t, SeverityWarning, iss.Severity)
	assert.Contains(t, iss.Message, "2", "names the duplicated ordinal")
	assert.Contains(t, iss.Message, "row 2", "names the 1-based first occurrence")
	assert.Equal(t, "3", iss.SuggestedValue, "suggests the current 1-based row")
	assert.True(t, iss.AutoFixable)
}

func TestCheckStructureGaps(t *testing.T) {
	issues := CheckStructure(billWithOrdinals(1, 2, 5))
	require.Len(t, issues, 1)

	iss := issues[0]
	assert.Equal(t, 2, iss.RowIndex, "attributed to the row holding ordinal 5")
	assert.Equal(t, CategoryStructure, iss.Category)
	assert.Equal(t, SeverityInfo, iss.Severity)
	assert.Contains(t, iss.Message, "2")
	assert.Contains(t, iss.Message, "5")
	assert.False(t, iss.AutoFixable)
}

func TestCheckStructure(t *testing.T) {
	tests := []struct {
		name     string
		ordinals []int
		wantDups int
		wantGaps int
	}{
		{name: "empty bill", ordinals: nil},
		{name: "single item", ordinals: []int{1}},
		{name: "sequential bill is clean", ordinals: []int{1, 2, 3, 4}},
		{name: "unsorted but gap-free is clean", ordinals: []int{3, 1, 2}},
		{name: "two gaps", ordinals: []int{1, 3, 7}, wantGaps: 2},
		{name: "triplicate emits two duplicate issues", ordinals: []int{4, 4, 4}, wantDups: 2},
		{name: "duplicate and gap together", ordinals: []int{1, 1, 4}, wantDups: 1, wantGaps: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckStructure(billWithOrdinals(tt.ordinals...))
			var dups, gaps int
			for _, iss := range issues {
				switch iss.Severity {
				case SeverityWarning:
					dups++
				case SeverityInfo:
					gaps++
				}
			}
			assert.Equal(t, tt.wantDups, dups, "duplicate issues")
			assert.Equal(t, tt.wantGaps, gaps, "gap issues")
		})
	}
}

func TestCheckStructureDuplicatesPrecedeGaps(t *testing.T) {
	issues := CheckStructure(billWithOrdinals(1, 4, 1))
	require.Len(t, issues, 2)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, SeverityInfo, issues[1].Severity)
}

// Gap attribution uses the first row carrying the post-gap ordinal, even if
// that row is a duplicate. Pinned so the tie-break does not change silently.
func TestCheckStructureGapAttributionFirstMatch(t *testing.T) {
	issues := CheckStructure(billWithOrdinals(5, 1, 5))
	var gap *Issue
	for i := range issues {
		if issues[i].Severity == SeverityInfo {
			gap = &issues[i]
		}
	}
	require.NotNil(t, gap)
	assert.Equal(t, 0, gap.RowIndex)
}
