package constructionlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"Position", "Description", "Unit", "Quantity", "Unit price"},
		{"1", "Excavation", "m3", "10.5", "25"},
		{"", "", "", "", ""},
		{"2", "Formwork", "m2", "3,25", "12,50"},
		{"3", "Rebar", "kg", "abc", "xyz"},
		{"4", "Short row"},
	}

	parsed := ParseRows(rows)
	require.Len(t, parsed, 4)

	assert.Equal(t, ParsedRow{
		DetectedPosition:   "1",
		Description:        "Excavation",
		UnitUploaded:       "m3",
		QuantityThisPeriod: 10.5,
		UnitPriceUploaded:  25,
	}, parsed[0])

	assert.Equal(t, 3.25, parsed[1].QuantityThisPeriod, "comma decimals accepted")
	assert.Equal(t, 12.5, parsed[1].UnitPriceUploaded)

	assert.Zero(t, parsed[2].QuantityThisPeriod, "non-numeric cells zero-filled")
	assert.Zero(t, parsed[2].UnitPriceUploaded)

	assert.Equal(t, "4", parsed[3].DetectedPosition, "missing trailing cells tolerated")
	assert.Zero(t, parsed[3].QuantityThisPeriod)
}

func TestParseRowsNoHeader(t *testing.T) {
	parsed := ParseRows([][]string{{"1", "Excavation", "m3", "2", "5"}})
	require.Len(t, parsed, 1)
	assert.Equal(t, "1", parsed[0].DetectedPosition)
}

func TestParseSheetFile(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]interface{}{
		{"Position", "Description", "Unit", "Quantity", "Unit price"},
		{"1", "Excavation", "m3", 10.5, 25},
		{"9", "Unknown work", "h", 2, 40},
	}
	for i, row := range data {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := ParseSheetFile(buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "1", parsed[0].DetectedPosition)
	assert.Equal(t, 10.5, parsed[0].QuantityThisPeriod)
	assert.Equal(t, "9", parsed[1].DetectedPosition)
}

func TestParseSheetFileRejectsGarbage(t *testing.T) {
	_, err := ParseSheetFile(strings.NewReader("not a spreadsheet"))
	assert.Error(t, err)
}
