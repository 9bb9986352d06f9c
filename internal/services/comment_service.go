package services

import (
	"context"
	"encoding/json"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"go.uber.org/zap"
)

// CommentService enforces the one ownership rule in the entity layer: only
// the authoring user may update or delete their comment. The existence check
// runs first, so an unknown id is a 404 before authorship can make it a 403.
type CommentService struct {
	store *repositories.Store[models.InterventionComment]
	audit *AuditRecorder
	log   *zap.Logger
}

func NewCommentService(store *repositories.Store[models.InterventionComment], audit *AuditRecorder, log *zap.Logger) *CommentService {
	return &CommentService{store: store, audit: audit, log: log}
}

func (s *CommentService) List(ctx context.Context, q repositories.ListQuery) ([]models.InterventionComment, int64, error) {
	comments, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Error fetching intervention comments", err)
	}
	return comments, total, nil
}

func (s *CommentService) Get(ctx context.Context, id uint, relations ...string) (*models.InterventionComment, error) {
	comment, err := s.store.Get(ctx, id, relations...)
	if err == repositories.ErrNotFound {
		return nil, apperr.NotFound("Intervention comment not found")
	}
	if err != nil {
		return nil, apperr.Internal("Error fetching intervention comment", err)
	}
	return comment, nil
}

// Create forces authorship to the request principal regardless of the body.
func (s *CommentService) Create(ctx context.Context, authorID uint, payload []byte) (*models.InterventionComment, error) {
	var cm models.InterventionComment
	if err := json.Unmarshal(payload, &cm); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}

	cm.ID = 0
	cm.UserID = authorID
	if cm.InterventionID == 0 {
		return nil, apperr.Validation("interventionId is required")
	}
	if cm.Content == "" {
		return nil, apperr.Validation("content is required")
	}

	if err := s.store.Create(ctx, &cm); err != nil {
		return nil, apperr.Internal("Error creating intervention comment", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     &authorID,
		EntityName: "InterventionComment",
		EntityID:   &cm.ID,
		Action:     models.AuditActionCreate,
		NewValues:  cm,
		Module:     models.ModuleComments,
	})

	return &cm, nil
}

func (s *CommentService) Update(ctx context.Context, principalID uint, id uint, payload []byte) (*models.InterventionComment, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != principalID {
		return nil, apperr.Forbidden("Only the comment author can update this comment")
	}
	old := *existing

	updated := *existing
	if err := json.Unmarshal(payload, &updated); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UserID = existing.UserID

	if err := s.store.Save(ctx, &updated); err != nil {
		return nil, apperr.Internal("Error updating intervention comment", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     &principalID,
		EntityName: "InterventionComment",
		EntityID:   &updated.ID,
		Action:     models.AuditActionUpdate,
		OldValues:  old,
		NewValues:  updated,
		Module:     models.ModuleComments,
	})

	return &updated, nil
}

func (s *CommentService) Delete(ctx context.Context, principalID uint, id uint) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != principalID {
		return apperr.Forbidden("Only the comment author can delete this comment")
	}
	old := *existing

	if err := s.store.HardDelete(ctx, id); err != nil {
		return apperr.Internal("Error deleting intervention comment", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     &principalID,
		EntityName: "InterventionComment",
		EntityID:   &old.ID,
		Action:     models.AuditActionDelete,
		OldValues:  old,
		Module:     models.ModuleComments,
	})

	return nil
}
