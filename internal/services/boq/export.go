package boq

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the project's bill as a workbook: header row, one row
// per item, and a grand total.
func (s *Service) ExportXLSX(projectID uuid.UUID) (*excelize.File, error) {
	items, err := s.billRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"No.", "Description", "Unit", "Quantity", "Unit price", "Total price"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	grandTotal := 0.0
	for i, item := range items {
		row := []interface{}{item.Ordinal, item.Description, item.Unit, item.Quantity, item.UnitPrice, item.TotalPrice}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, err
		}
		grandTotal += item.TotalPrice
	}

	totalRef, err := excelize.CoordinatesToCellName(5, len(items)+2)
	if err != nil {
		return nil, err
	}
	totalRow := []interface{}{"Total", fmt.Sprintf("%.2f", grandTotal)}
	if err := f.SetSheetRow(sheet, totalRef, &totalRow); err != nil {
		return nil, err
	}

	return f, nil
}
