package constructionlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-management-backend/internal/models"

	"github.com/google/uuid"
)

func billItem(ordinal int, description string) models.BillItem {
	return models.BillItem{
		ID:          uuid.New(),
		Ordinal:     ordinal,
		Description: description,
		Unit:        "m3",
		Quantity:    1,
		UnitPrice:   1,
		TotalPrice:  1,
	}
}

func TestOrdinalMatcher(t *testing.T) {
	items := []models.BillItem{
		billItem(1, "excavation"),
		billItem(2, "formwork"),
		billItem(2, "formwork walls"),
	}

	tests := []struct {
		name       string
		position   string
		wantStatus string
		wantItem   int // ordinal of the expected match, 0 if none
	}{
		{name: "exact match", position: "1", wantStatus: models.MatchStatusMatched, wantItem: 1},
		{name: "surrounding whitespace tolerated", position: " 1 ", wantStatus: models.MatchStatusMatched, wantItem: 1},
		{name: "unknown code", position: "9", wantStatus: models.MatchStatusUnmatched},
		{name: "empty code", position: "", wantStatus: models.MatchStatusUnmatched},
		{name: "non-numeric code", position: "A.1", wantStatus: models.MatchStatusUnmatched},
		{name: "duplicated ordinal is ambiguous", position: "2", wantStatus: models.MatchStatusAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := OrdinalMatcher{}.Match(ParsedRow{DetectedPosition: tt.position}, items)
			assert.Equal(t, tt.wantStatus, outcome.Status)
			if tt.wantItem != 0 {
				require.NotNil(t, outcome.Item)
				assert.Equal(t, tt.wantItem, outcome.Item.Ordinal)
			} else {
				assert.Nil(t, outcome.Item)
			}
		})
	}
}

func TestSimilarityMatcherBreaksTies(t *testing.T) {
	items := []models.BillItem{
		billItem(3, "reinforced concrete slab"),
		billItem(3, "asphalt paving layer"),
	}

	m := SimilarityMatcher{MinScore: 60}

	outcome := m.Match(ParsedRow{DetectedPosition: "3", Description: "reinforced concrete slab"}, items)
	require.Equal(t, models.MatchStatusMatched, outcome.Status)
	assert.Equal(t, "reinforced concrete slab", outcome.Item.Description)

	// Nothing resembling either candidate stays ambiguous.
	outcome = m.Match(ParsedRow{DetectedPosition: "3", Description: "zzzz"}, items)
	assert.Equal(t, models.MatchStatusAmbiguous, outcome.Status)
	assert.Nil(t, outcome.Item)
}

func TestSimilarityMatcherSingleCandidate(t *testing.T) {
	items := []models.BillItem{billItem(4, "drainage pipe")}
	outcome := SimilarityMatcher{}.Match(ParsedRow{DetectedPosition: "4", Description: "unrelated"}, items)
	assert.Equal(t, models.MatchStatusMatched, outcome.Status)
}
