package boq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"construction-management-backend/internal/config"
	"construction-management-backend/internal/models"
	"construction-management-backend/internal/repository"
	"construction-management-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrFieldNotFixable rejects fix application against a field the validators
// never suggest values for.
var ErrFieldNotFixable = errors.New("field does not accept suggested values")

// Service owns the bill of quantities: item maintenance, CSV import,
// validation runs and applying accepted fix suggestions.
type Service struct {
	billRepo *repository.BillItemRepository
	logger   *logrus.Logger
}

func NewService(billRepo *repository.BillItemRepository) *Service {
	return &Service{
		billRepo: billRepo,
		logger:   config.GetLogger(),
	}
}

func (s *Service) ListItems(projectID uuid.UUID) ([]models.BillItem, error) {
	return s.billRepo.ListByProject(projectID)
}

func (s *Service) CreateItem(item *models.BillItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Ordinal == 0 {
		max, err := s.billRepo.MaxOrdinal(item.ProjectID)
		if err != nil {
			return err
		}
		item.Ordinal = max + 1
	}
	item.CreatedAt = time.Now()
	return s.billRepo.Create(item)
}

func (s *Service) GetItem(id uuid.UUID) (*models.BillItem, error) {
	return s.billRepo.GetByID(id)
}

func (s *Service) UpdateItem(item *models.BillItem) error {
	return s.billRepo.Update(item)
}

func (s *Service) DeleteItem(id uuid.UUID) error {
	return s.billRepo.Delete(id)
}

// Validate runs the validation pipeline over the project's bill.
func (s *Service) Validate(projectID uuid.UUID) (validation.Result, error) {
	items, err := s.billRepo.ListByProject(projectID)
	if err != nil {
		return validation.Result{}, err
	}
	return validation.Validate(items), nil
}

// ApplyFix writes an accepted suggestion back into the named bill item
// field and records the decision for audit.
func (s *Service) ApplyFix(itemID uuid.UUID, field, suggestedValue, performedBy, reason string) (*models.BillItem, error) {
	item, err := s.billRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}

	var previous string
	switch field {
	case "total_price":
		previous = fmt.Sprintf("%.2f", item.TotalPrice)
		v, err := strconv.ParseFloat(suggestedValue, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid total price %q: %w", suggestedValue, err)
		}
		item.TotalPrice = v
	case "quantity":
		previous = fmt.Sprintf("%.2f", item.Quantity)
		v, err := strconv.ParseFloat(suggestedValue, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", suggestedValue, err)
		}
		item.Quantity = v
	case "unit_price":
		previous = fmt.Sprintf("%.2f", item.UnitPrice)
		v, err := strconv.ParseFloat(suggestedValue, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unit price %q: %w", suggestedValue, err)
		}
		item.UnitPrice = v
	case "ordinal":
		previous = strconv.Itoa(item.Ordinal)
		v, err := strconv.Atoi(suggestedValue)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid ordinal %q", suggestedValue)
		}
		item.Ordinal = v
	default:
		return nil, ErrFieldNotFixable
	}

	if err := s.billRepo.Update(item); err != nil {
		return nil, err
	}

	decision := models.IssueDecision{
		ID:            uuid.New(),
		ProjectID:     item.ProjectID,
		BillItemID:    item.ID,
		Field:         field,
		Action:        "accepted",
		PreviousValue: previous,
		NewValue:      suggestedValue,
		PerformedBy:   performedBy,
		Reason:        reason,
		CreatedAt:     time.Now(),
	}
	if err := s.billRepo.DB().Create(&decision).Error; err != nil {
		config.LogError(s.logger, "boq", "ApplyFix", "recording decision", item.ID, err)
	}

	return item, nil
}

// ImportCSV reads bill items from a CSV stream. Expected columns: ordinal,
// description, unit, quantity, unit price, total price (optional, computed
// when blank). Bad rows are skipped, the rest of the file still imports.
func (s *Service) ImportCSV(projectID uuid.UUID, reader io.Reader) (int, int, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	nextOrdinal, err := s.billRepo.MaxOrdinal(projectID)
	if err != nil {
		return 0, 0, err
	}

	var items []models.BillItem
	imported, skipped, rowNum := 0, 0, 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			skipped++
			continue
		}
		if len(record) == 0 || strings.Join(record, "") == "" {
			continue
		}
		if rowNum == 1 && looksLikeHeader(record) {
			continue
		}
		if len(record) < 5 {
			skipped++
			continue
		}

		ordinal, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil || ordinal <= 0 {
			nextOrdinal++
			ordinal = nextOrdinal
		} else if ordinal > nextOrdinal {
			nextOrdinal = ordinal
		}

		quantity, qErr := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		unitPrice, pErr := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if qErr != nil || pErr != nil {
			skipped++
			continue
		}

		total := quantity * unitPrice
		if len(record) > 5 {
			if v, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64); err == nil {
				total = v
			}
		}

		items = append(items, models.BillItem{
			ID:          uuid.New(),
			ProjectID:   projectID,
			Ordinal:     ordinal,
			Description: strings.TrimSpace(record[1]),
			Unit:        strings.TrimSpace(record[2]),
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  total,
			CreatedAt:   time.Now(),
		})
		imported++
	}

	if err := s.billRepo.CreateBatch(items); err != nil {
		return 0, 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"module":     "boq",
		"project_id": projectID,
		"imported":   imported,
		"skipped":    skipped,
	}).Info("bill import finished")

	return imported, skipped, nil
}

func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(record[0]))
	return err != nil
}
