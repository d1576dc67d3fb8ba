package repository

import (
	"construction-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConstructionLogRepository struct {
	db *gorm.DB
}

func NewConstructionLogRepository(db *gorm.DB) *ConstructionLogRepository {
	return &ConstructionLogRepository{db: db}
}

func (r *ConstructionLogRepository) DB() *gorm.DB {
	return r.db
}

func (r *ConstructionLogRepository) CreateSituation(s *models.ConstructionLogSituation) error {
	return r.db.Create(s).Error
}

func (r *ConstructionLogRepository) GetSituation(id uuid.UUID) (*models.ConstructionLogSituation, error) {
	var s models.ConstructionLogSituation
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ConstructionLogRepository) ListSituations(projectID uuid.UUID) ([]models.ConstructionLogSituation, error) {
	var situations []models.ConstructionLogSituation
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&situations).Error
	return situations, err
}

func (r *ConstructionLogRepository) UpdateSituation(s *models.ConstructionLogSituation) error {
	return r.db.Save(s).Error
}

// DeleteSituation removes the situation together with its sheets and
// positions.
func (r *ConstructionLogRepository) DeleteSituation(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("situation_id = ?", id).Delete(&models.ConstructionLogPosition{}).Error; err != nil {
			return err
		}
		if err := tx.Where("situation_id = ?", id).Delete(&models.ConstructionLogSheet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ConstructionLogSituation{}, "id = ?", id).Error
	})
}

func (r *ConstructionLogRepository) CreateSheet(sheet *models.ConstructionLogSheet) error {
	return r.db.Create(sheet).Error
}

func (r *ConstructionLogRepository) ListSheets(situationID uuid.UUID) ([]models.ConstructionLogSheet, error) {
	var sheets []models.ConstructionLogSheet
	err := r.db.
		Where("situation_id = ?", situationID).
		Order("created_at ASC").
		Find(&sheets).Error
	return sheets, err
}

// DeletePositionsBySituation clears a situation's positions so a sheet can
// be reprocessed without double-counting.
func (r *ConstructionLogRepository) DeletePositionsBySituation(situationID uuid.UUID) error {
	return r.db.Where("situation_id = ?", situationID).Delete(&models.ConstructionLogPosition{}).Error
}

func (r *ConstructionLogRepository) CreatePositionsBatch(positions []models.ConstructionLogPosition) error {
	if len(positions) == 0 {
		return nil
	}
	return r.db.CreateInBatches(positions, 200).Error
}

func (r *ConstructionLogRepository) ListPositions(situationID uuid.UUID) ([]models.ConstructionLogPosition, error) {
	var positions []models.ConstructionLogPosition
	err := r.db.
		Where("situation_id = ?", situationID).
		Order("created_at ASC, detected_position ASC").
		Find(&positions).Error
	return positions, err
}

type quantityRow struct {
	BillItemID uuid.UUID
	Total      float64
}

// SumPriorQuantities returns, per bill item, the sum of quantity_this_period
// over all positions belonging to situations created strictly before the
// given situation. This is the history a new situation accumulates against.
func (r *ConstructionLogRepository) SumPriorQuantities(projectID uuid.UUID, before *models.ConstructionLogSituation) (map[uuid.UUID]float64, error) {
	var rows []quantityRow
	err := r.db.Model(&models.ConstructionLogPosition{}).
		Select("construction_log_positions.bill_item_id AS bill_item_id, COALESCE(SUM(construction_log_positions.quantity_this_period),0) AS total").
		Joins("JOIN construction_log_situations ON construction_log_situations.id = construction_log_positions.situation_id").
		Where("construction_log_positions.project_id = ?", projectID).
		Where("construction_log_positions.bill_item_id IS NOT NULL").
		Where("construction_log_situations.created_at < ?", before.CreatedAt).
		Group("construction_log_positions.bill_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		sums[row.BillItemID] = row.Total
	}
	return sums, nil
}
