package constructionlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-management-backend/internal/models"

	"github.com/google/uuid"
)

func meta() PositionMeta {
	return PositionMeta{
		ProjectID:   uuid.New(),
		SituationID: uuid.New(),
		SheetID:     uuid.New(),
		SheetName:   "situation.xlsx",
	}
}

// sumsFrom folds a batch of positions into the prior-quantity map the next
// situation would be computed against.
func sumsFrom(batches ...[]models.ConstructionLogPosition) map[uuid.UUID]float64 {
	sums := make(map[uuid.UUID]float64)
	for _, batch := range batches {
		for _, p := range batch {
			if p.BillItemID != nil {
				sums[*p.BillItemID] += p.QuantityThisPeriod
			}
		}
	}
	return sums
}

func TestBuildPositionsCumulativeAcrossSituations(t *testing.T) {
	items := []models.BillItem{billItem(1, "excavation")}

	s1 := BuildPositions(
		[]ParsedRow{{DetectedPosition: "1", Description: "excavation", QuantityThisPeriod: 10}},
		items, nil, OrdinalMatcher{}, meta(),
	)
	require.Len(t, s1, 1)
	require.Equal(t, models.MatchStatusMatched, s1[0].MatchStatus)
	assert.Equal(t, 10.0, s1[0].QuantityCumulative)

	s2 := BuildPositions(
		[]ParsedRow{{DetectedPosition: "1", Description: "excavation", QuantityThisPeriod: 5}},
		items, sumsFrom(s1), OrdinalMatcher{}, meta(),
	)
	require.Len(t, s2, 1)
	assert.Equal(t, 15.0, s2[0].QuantityCumulative, "second period accumulates the first")
	assert.Equal(t, 10.0, s1[0].QuantityCumulative, "first period is untouched")
}

func TestBuildPositionsReprocessingEarlierSituation(t *testing.T) {
	items := []models.BillItem{billItem(1, "excavation")}

	s1 := BuildPositions(
		[]ParsedRow{{DetectedPosition: "1", QuantityThisPeriod: 10}},
		items, nil, OrdinalMatcher{}, meta(),
	)
	s2 := BuildPositions(
		[]ParsedRow{{DetectedPosition: "1", QuantityThisPeriod: 5}},
		items, sumsFrom(s1), OrdinalMatcher{}, meta(),
	)

	// S1 is discarded and rebuilt with different figures. S2 was computed
	// from S1's state at its own processing time and must not change.
	s1Rebuilt := BuildPositions(
		[]ParsedRow{{DetectedPosition: "1", QuantityThisPeriod: 12}},
		items, nil, OrdinalMatcher{}, meta(),
	)
	assert.Equal(t, 12.0, s1Rebuilt[0].QuantityCumulative)
	assert.Equal(t, 15.0, s2[0].QuantityCumulative)
}

func TestBuildPositionsUnmatchedIgnoresHistory(t *testing.T) {
	items := []models.BillItem{billItem(1, "excavation")}
	prior := map[uuid.UUID]float64{items[0].ID: 99}

	positions := BuildPositions(
		[]ParsedRow{
			{DetectedPosition: "7", QuantityThisPeriod: 4},
			{DetectedPosition: "", QuantityThisPeriod: 3},
		},
		items, prior, OrdinalMatcher{}, meta(),
	)
	require.Len(t, positions, 2)
	for _, p := range positions {
		assert.Equal(t, models.MatchStatusUnmatched, p.MatchStatus)
		assert.Nil(t, p.BillItemID)
		assert.Equal(t, p.QuantityThisPeriod, p.QuantityCumulative)
	}
}

func TestBuildPositionsAmbiguousIgnoresHistory(t *testing.T) {
	items := []models.BillItem{billItem(2, "formwork"), billItem(2, "formwork walls")}
	prior := map[uuid.UUID]float64{items[0].ID: 50, items[1].ID: 60}

	positions := BuildPositions(
		[]ParsedRow{{DetectedPosition: "2", QuantityThisPeriod: 8}},
		items, prior, OrdinalMatcher{}, meta(),
	)
	require.Len(t, positions, 1)
	assert.Equal(t, models.MatchStatusAmbiguous, positions[0].MatchStatus)
	assert.Nil(t, positions[0].BillItemID)
	assert.Equal(t, 8.0, positions[0].QuantityCumulative)
}

func TestBuildPositionsMalformedRowDoesNotBlockBatch(t *testing.T) {
	items := []models.BillItem{billItem(1, "excavation")}

	positions := BuildPositions(
		[]ParsedRow{
			{DetectedPosition: "", Description: "garbled row"}, // zero-filled by the parser
			{DetectedPosition: "1", QuantityThisPeriod: 2},
		},
		items, nil, OrdinalMatcher{}, meta(),
	)
	require.Len(t, positions, 2)
	assert.Equal(t, models.MatchStatusUnmatched, positions[0].MatchStatus)
	assert.Zero(t, positions[0].QuantityThisPeriod)
	assert.Equal(t, models.MatchStatusMatched, positions[1].MatchStatus)
}

func TestBuildPositionsStampsMeta(t *testing.T) {
	m := meta()
	items := []models.BillItem{billItem(1, "excavation")}
	positions := BuildPositions(
		[]ParsedRow{{DetectedPosition: "1", UnitUploaded: "m3", UnitPriceUploaded: 7.5, QuantityThisPeriod: 2}},
		items, nil, nil, m,
	)
	require.Len(t, positions, 1)
	p := positions[0]
	assert.Equal(t, m.ProjectID, p.ProjectID)
	assert.Equal(t, m.SituationID, p.SituationID)
	assert.Equal(t, m.SheetID, p.SheetID)
	assert.Equal(t, m.SheetName, p.SheetName)
	assert.Equal(t, "m3", p.UnitUploaded)
	assert.Equal(t, 7.5, p.UnitPriceUploaded)
	assert.NotEmpty(t, p.MatchDetails)
}
