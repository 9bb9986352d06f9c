package repositories

import (
	"context"

	"github.com/bienestar-escolar/backend/internal/models"
	"gorm.io/gorm"
)

// AuditRepo is the only writer of audit rows. It exposes append and read;
// there is deliberately no update or delete.
type AuditRepo struct {
	store *Store[models.Audit]
}

func NewAuditRepo(db *gorm.DB) *AuditRepo {
	return &AuditRepo{
		store: NewStore[models.Audit](db, StoreConfig{
			DefaultOrder: "created_at DESC",
			Relations:    map[string]string{"user": "User"},
		}),
	}
}

func (r *AuditRepo) Append(ctx context.Context, entry *models.Audit) error {
	return r.store.Create(ctx, entry)
}

func (r *AuditRepo) List(ctx context.Context, q ListQuery) ([]models.Audit, int64, error) {
	return r.store.List(ctx, q)
}

func (r *AuditRepo) Get(ctx context.Context, id uint, relations ...string) (*models.Audit, error) {
	return r.store.Get(ctx, id, relations...)
}
