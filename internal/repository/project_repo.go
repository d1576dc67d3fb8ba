package repository

import (
	"construction-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) DB() *gorm.DB {
	return r.db
}

func (r *ProjectRepository) Create(p *models.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(status string) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(p *models.Project) error {
	return r.db.Save(p).Error
}

// Delete removes the project and everything it owns.
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.ConstructionLogPosition{},
			&models.ConstructionLogSheet{},
			&models.ConstructionLogSituation{},
			&models.BillItem{},
			&models.IssueDecision{},
			&models.Expense{},
			&models.Task{},
			&models.Photo{},
		} {
			if err := tx.Where("project_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("purchase_order_id IN (?)",
			tx.Model(&models.PurchaseOrder{}).Select("id").Where("project_id = ?", id),
		).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.PurchaseOrder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
