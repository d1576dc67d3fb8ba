package constructionlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"construction-management-backend/internal/config"
	"construction-management-backend/internal/models"
	"construction-management-backend/internal/repository"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	// ErrNoBillItems means reconciliation was requested for a project whose
	// bill is empty. Cumulative figures would be meaningless, so this is a
	// hard failure rather than an all-unmatched result.
	ErrNoBillItems = errors.New("project has no bill items to reconcile against")

	// ErrSituationFinalized rejects writes into a finalized snapshot.
	ErrSituationFinalized = errors.New("situation is finalized")

	// ErrProjectLocked means another reconciliation currently holds the
	// per-project lock.
	ErrProjectLocked = errors.New("another reconciliation is running for this project")
)

const lockTTL = 30 * time.Second

// Service owns the construction-log workflow: situation lifecycle, sheet
// ingestion and position reconciliation. Reconciliation for one project is
// serialized; different projects proceed independently.
type Service struct {
	logRepo  *repository.ConstructionLogRepository
	billRepo *repository.BillItemRepository
	matcher  PositionMatcher
	locker   *redislock.Client
	logger   *logrus.Logger

	projectMu sync.Map // uuid.UUID -> *sync.Mutex, fallback when no locker
}

func NewService(
	logRepo *repository.ConstructionLogRepository,
	billRepo *repository.BillItemRepository,
	matcher PositionMatcher,
	locker *redislock.Client,
) *Service {
	if matcher == nil {
		matcher = OrdinalMatcher{}
	}
	return &Service{
		logRepo:  logRepo,
		billRepo: billRepo,
		matcher:  matcher,
		locker:   locker,
		logger:   config.GetLogger(),
	}
}

func (s *Service) CreateSituation(projectID uuid.UUID, name string) (*models.ConstructionLogSituation, error) {
	situation := &models.ConstructionLogSituation{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
		Status:    models.SituationStatusDraft,
		CreatedAt: time.Now(),
	}
	if err := s.logRepo.CreateSituation(situation); err != nil {
		return nil, err
	}
	return situation, nil
}

func (s *Service) GetSituation(id uuid.UUID) (*models.ConstructionLogSituation, error) {
	return s.logRepo.GetSituation(id)
}

func (s *Service) ListSituations(projectID uuid.UUID) ([]models.ConstructionLogSituation, error) {
	return s.logRepo.ListSituations(projectID)
}

func (s *Service) ListSheets(situationID uuid.UUID) ([]models.ConstructionLogSheet, error) {
	return s.logRepo.ListSheets(situationID)
}

func (s *Service) ListPositions(situationID uuid.UUID) ([]models.ConstructionLogPosition, error) {
	return s.logRepo.ListPositions(situationID)
}

// UpdateSituationStatus sets an externally controlled workflow status.
// Finalized situations are frozen.
func (s *Service) UpdateSituationStatus(id uuid.UUID, status string) (*models.ConstructionLogSituation, error) {
	situation, err := s.logRepo.GetSituation(id)
	if err != nil {
		return nil, err
	}
	if situation.Status == models.SituationStatusFinalized {
		return nil, ErrSituationFinalized
	}
	situation.Status = status
	if status == models.SituationStatusFinalized {
		now := time.Now()
		situation.FinalizedAt = &now
	}
	if err := s.logRepo.UpdateSituation(situation); err != nil {
		return nil, err
	}
	return situation, nil
}

func (s *Service) DeleteSituation(id uuid.UUID) error {
	return s.logRepo.DeleteSituation(id)
}

// ProcessSheet ingests one uploaded spreadsheet for a situation: parses it,
// replaces the situation's existing positions and writes a freshly
// reconciled batch. Reprocessing the same situation is therefore idempotent
// and never double-counts on later situations.
func (s *Service) ProcessSheet(ctx context.Context, situationID uuid.UUID, sheetName string, file io.Reader) (*models.ConstructionLogSheet, []models.ConstructionLogPosition, error) {
	situation, err := s.logRepo.GetSituation(situationID)
	if err != nil {
		return nil, nil, err
	}
	if situation.Status == models.SituationStatusFinalized {
		return nil, nil, ErrSituationFinalized
	}

	rows, err := ParseSheetFile(file)
	if err != nil {
		return nil, nil, err
	}

	release, err := s.lockProject(ctx, situation.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	items, err := s.billRepo.ListByProject(situation.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, ErrNoBillItems
	}

	if err := s.logRepo.DeletePositionsBySituation(situation.ID); err != nil {
		return nil, nil, err
	}

	priorSums, err := s.logRepo.SumPriorQuantities(situation.ProjectID, situation)
	if err != nil {
		return nil, nil, err
	}

	sheet := &models.ConstructionLogSheet{
		ID:          uuid.New(),
		ProjectID:   situation.ProjectID,
		SituationID: situation.ID,
		Name:        sheetName,
		RowCount:    len(rows),
		CreatedAt:   time.Now(),
	}
	if err := s.logRepo.CreateSheet(sheet); err != nil {
		return nil, nil, err
	}

	positions := BuildPositions(rows, items, priorSums, s.matcher, PositionMeta{
		ProjectID:   situation.ProjectID,
		SituationID: situation.ID,
		SheetID:     sheet.ID,
		SheetName:   sheet.Name,
	})
	if err := s.logRepo.CreatePositionsBatch(positions); err != nil {
		return nil, nil, err
	}

	situation.PositionCount = len(positions)
	situation.ProcessedCount = len(rows)
	if err := s.logRepo.UpdateSituation(situation); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"module":       "constructionlog",
		"project_id":   situation.ProjectID,
		"situation_id": situation.ID,
		"sheet":        sheet.Name,
		"rows":         len(rows),
		"positions":    len(positions),
	}).Info("sheet reconciled")

	return sheet, positions, nil
}

// PositionMeta carries the identifiers stamped onto every position of one
// reconciliation run.
type PositionMeta struct {
	ProjectID   uuid.UUID
	SituationID uuid.UUID
	SheetID     uuid.UUID
	SheetName   string
}

// BuildPositions is the pure reconciliation step: match every parsed row
// against the bill and compute cumulative quantities from the prior-period
// sums. Matched rows accumulate history for their bill item; unmatched and
// ambiguous rows carry only the current period.
func BuildPositions(rows []ParsedRow, items []models.BillItem, priorSums map[uuid.UUID]float64, matcher PositionMatcher, meta PositionMeta) []models.ConstructionLogPosition {
	if matcher == nil {
		matcher = OrdinalMatcher{}
	}

	now := time.Now()
	positions := make([]models.ConstructionLogPosition, 0, len(rows))
	for _, row := range rows {
		outcome := matcher.Match(row, items)

		pos := models.ConstructionLogPosition{
			ID:                 uuid.New(),
			ProjectID:          meta.ProjectID,
			SituationID:        meta.SituationID,
			SheetID:            meta.SheetID,
			SheetName:          meta.SheetName,
			DetectedPosition:   row.DetectedPosition,
			Description:        row.Description,
			UnitUploaded:       row.UnitUploaded,
			UnitPriceUploaded:  row.UnitPriceUploaded,
			QuantityThisPeriod: row.QuantityThisPeriod,
			QuantityCumulative: row.QuantityThisPeriod,
			MatchStatus:        outcome.Status,
			CreatedAt:          now,
		}

		details := map[string]interface{}{
			"detected_position": row.DetectedPosition,
			"decision":          outcome.Status,
		}
		if outcome.Status == models.MatchStatusMatched && outcome.Item != nil {
			id := outcome.Item.ID
			pos.BillItemID = &id
			pos.QuantityCumulative = row.QuantityThisPeriod + priorSums[id]
			details["bill_item_id"] = id.String()
			details["bill_item_ordinal"] = outcome.Item.Ordinal
			details["prior_quantity"] = priorSums[id]
		}
		if detailsJSON, err := json.Marshal(details); err == nil {
			pos.MatchDetails = datatypes.JSON(detailsJSON)
		}

		positions = append(positions, pos)
	}
	return positions
}

func (s *Service) lockProject(ctx context.Context, projectID uuid.UUID) (func(), error) {
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, fmt.Sprintf("reconcile:%s", projectID), lockTTL, nil)
		if err == redislock.ErrNotObtained {
			return nil, ErrProjectLocked
		}
		if err != nil {
			return nil, err
		}
		return func() { _ = lock.Release(ctx) }, nil
	}

	val, _ := s.projectMu.LoadOrStore(projectID, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock, nil
}
