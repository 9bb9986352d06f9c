package services

import (
	"context"
	"encoding/json"

	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AuditEntry is one who/what/when record of a mutating action.
type AuditEntry struct {
	UserID     *uint
	EntityName string
	EntityID   *uint
	Action     string
	OldValues  any
	NewValues  any
	IPAddress  string
	Module     string
	Details    string
}

// AuditRecorder appends immutable audit rows after each mutation has been
// persisted. An audit write failure never fails the triggering operation —
// the main action's availability wins — but it is always surfaced on the
// operator log, never swallowed.
type AuditRecorder struct {
	repo *repositories.AuditRepo
	log  *zap.Logger
}

func NewAuditRecorder(repo *repositories.AuditRepo, log *zap.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, log: log}
}

func (r *AuditRecorder) Record(ctx context.Context, e AuditEntry) {
	row := models.Audit{
		UserID:     e.UserID,
		EntityName: e.EntityName,
		EntityID:   e.EntityID,
		Action:     e.Action,
		OldValues:  snapshot(e.OldValues),
		NewValues:  snapshot(e.NewValues),
		IPAddress:  e.IPAddress,
		Module:     e.Module,
		Details:    e.Details,
	}

	if err := r.repo.Append(ctx, &row); err != nil {
		r.log.Error("audit write failed",
			zap.String("entity", e.EntityName),
			zap.String("action", e.Action),
			zap.Error(err),
		)
	}
}

// snapshot serializes a before/after value capture. Marshalling goes through
// the models' json tags, so sensitive fields tagged "-" never reach the audit
// table.
func snapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
