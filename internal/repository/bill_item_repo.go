package repository

import (
	"construction-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillItemRepository struct {
	db *gorm.DB
}

func NewBillItemRepository(db *gorm.DB) *BillItemRepository {
	return &BillItemRepository{db: db}
}

func (r *BillItemRepository) DB() *gorm.DB {
	return r.db
}

func (r *BillItemRepository) Create(item *models.BillItem) error {
	return r.db.Create(item).Error
}

func (r *BillItemRepository) CreateBatch(items []models.BillItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.CreateInBatches(items, 200).Error
}

func (r *BillItemRepository) GetByID(id uuid.UUID) (*models.BillItem, error) {
	var item models.BillItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByProject returns the project's bill in ordinal order, which is the
// order the validators expect.
func (r *BillItemRepository) ListByProject(projectID uuid.UUID) ([]models.BillItem, error) {
	var items []models.BillItem
	err := r.db.
		Where("project_id = ?", projectID).
		Order("ordinal ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *BillItemRepository) Update(item *models.BillItem) error {
	return r.db.Save(item).Error
}

func (r *BillItemRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BillItem{}, "id = ?", id).Error
}

func (r *BillItemRepository) MaxOrdinal(projectID uuid.UUID) (int, error) {
	var max int
	err := r.db.Model(&models.BillItem{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(ordinal), 0)").
		Scan(&max).Error
	return max, err
}
