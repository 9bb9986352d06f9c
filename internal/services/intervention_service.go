package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"go.uber.org/zap"
)

// InterventionService handles welfare cases. Cases carry no ownership rule:
// any authenticated staff member may update or delete any case.
type InterventionService struct {
	store *repositories.Store[models.Intervention]
	audit *AuditRecorder
	log   *zap.Logger
}

func NewInterventionService(store *repositories.Store[models.Intervention], audit *AuditRecorder, log *zap.Logger) *InterventionService {
	return &InterventionService{store: store, audit: audit, log: log}
}

func (s *InterventionService) List(ctx context.Context, q repositories.ListQuery) ([]models.Intervention, int64, error) {
	interventions, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Error fetching interventions", err)
	}
	return interventions, total, nil
}

func (s *InterventionService) Get(ctx context.Context, id uint, relations ...string) (*models.Intervention, error) {
	intervention, err := s.store.Get(ctx, id, relations...)
	if err == repositories.ErrNotFound {
		return nil, apperr.NotFound("Intervention not found")
	}
	if err != nil {
		return nil, apperr.Internal("Error fetching intervention", err)
	}
	return intervention, nil
}

func (s *InterventionService) Create(ctx context.Context, actorID *uint, payload []byte) (*models.Intervention, error) {
	var iv models.Intervention
	if err := json.Unmarshal(payload, &iv); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}

	iv.ID = 0
	if iv.StudentID == 0 {
		return nil, apperr.Validation("studentId is required")
	}
	if iv.DateReported.IsZero() {
		iv.DateReported = time.Now()
	}

	if err := s.store.Create(ctx, &iv); err != nil {
		return nil, apperr.Internal("Error creating intervention", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "Intervention",
		EntityID:   &iv.ID,
		Action:     models.AuditActionCreate,
		NewValues:  iv,
		Module:     models.ModuleInterventions,
	})

	return &iv, nil
}

func (s *InterventionService) Update(ctx context.Context, actorID *uint, id uint, payload []byte) (*models.Intervention, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *existing

	updated := *existing
	if err := json.Unmarshal(payload, &updated); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.store.Save(ctx, &updated); err != nil {
		return nil, apperr.Internal("Error updating intervention", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "Intervention",
		EntityID:   &updated.ID,
		Action:     models.AuditActionUpdate,
		OldValues:  old,
		NewValues:  updated,
		Module:     models.ModuleInterventions,
	})

	return &updated, nil
}

// Delete removes the case permanently.
func (s *InterventionService) Delete(ctx context.Context, actorID *uint, id uint) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	old := *existing

	if err := s.store.HardDelete(ctx, id); err != nil {
		return apperr.Internal("Error deleting intervention", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "Intervention",
		EntityID:   &old.ID,
		Action:     models.AuditActionDelete,
		OldValues:  old,
		Module:     models.ModuleInterventions,
	})

	return nil
}
