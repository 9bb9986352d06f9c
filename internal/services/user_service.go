package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store *repositories.Store[models.User]
	audit *AuditRecorder
	log   *zap.Logger
}

func NewUserService(store *repositories.Store[models.User], audit *AuditRecorder, log *zap.Logger) *UserService {
	return &UserService{store: store, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context, q repositories.ListQuery) ([]models.User, int64, error) {
	users, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Error fetching users", err)
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, id uint, relations ...string) (*models.User, error) {
	user, err := s.store.Get(ctx, id, relations...)
	if err == repositories.ErrNotFound {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("Error fetching user", err)
	}
	return user, nil
}

// Create hashes the extracted plaintext password, enforces email and RUT
// uniqueness, persists and audits.
func (s *UserService) Create(ctx context.Context, actorID *uint, payload []byte, password string) (*models.User, error) {
	var u models.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}

	u.ID = 0
	u.RUT = models.NormalizeRUT(u.RUT)
	if !models.ValidRUT(u.RUT) {
		return nil, apperr.Validation("Invalid RUT format")
	}

	n, err := s.store.Count(ctx, "email = ? OR rut = ?", u.Email, u.RUT)
	if err != nil {
		return nil, apperr.Internal("Error creating user", err)
	}
	if n > 0 {
		return nil, apperr.Conflict("User already exists with this email or RUT")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Error creating user", err)
	}
	u.Password = string(hash)
	u.IsActive = true
	u.DeletedAt = nil
	u.LoginAttempts = 0

	if err := s.store.Create(ctx, &u); err != nil {
		return nil, apperr.Internal("Error creating user", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "User",
		EntityID:   &u.ID,
		Action:     models.AuditActionCreate,
		NewValues:  u,
		Module:     models.ModuleUsers,
	})

	return &u, nil
}

// Update merges the partial payload over the stored record. The hash is
// protected from blind overwrite; a non-empty password re-hashes.
func (s *UserService) Update(ctx context.Context, actorID *uint, id uint, payload []byte, password string) (*models.User, error) {
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
	updated.Password = existing.Password

	updated.RUT = models.NormalizeRUT(updated.RUT)
	if updated.RUT != existing.RUT || updated.Email != existing.Email {
		if !models.ValidRUT(updated.RUT) {
			return nil, apperr.Validation("Invalid RUT format")
		}
		n, err := s.store.Count(ctx, "id <> ? AND (email = ? OR rut = ?)", id, updated.Email, updated.RUT)
		if err != nil {
			return nil, apperr.Internal("Error updating user", err)
		}
		if n > 0 {
			return nil, apperr.Conflict("User already exists with this email or RUT")
		}
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("Error updating user", err)
		}
		updated.Password = string(hash)
	}

	if err := s.store.Save(ctx, &updated); err != nil {
		return nil, apperr.Internal("Error updating user", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "User",
		EntityID:   &updated.ID,
		Action:     models.AuditActionUpdate,
		OldValues:  old,
		NewValues:  updated,
		Module:     models.ModuleUsers,
	})

	return &updated, nil
}

// Delete deactivates the account; the row is retained.
func (s *UserService) Delete(ctx context.Context, actorID *uint, id uint) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	old := *existing

	now := time.Now()
	existing.IsActive = false
	existing.DeletedAt = &now

	if err := s.store.Save(ctx, existing); err != nil {
		return apperr.Internal("Error removing user", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "User",
		EntityID:   &existing.ID,
		Action:     models.AuditActionDelete,
		OldValues:  old,
		NewValues:  *existing,
		Module:     models.ModuleUsers,
	})

	return nil
}
