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

type StudentService struct {
	store *repositories.Store[models.Student]
	audit *AuditRecorder
	log   *zap.Logger
}

func NewStudentService(store *repositories.Store[models.Student], audit *AuditRecorder, log *zap.Logger) *StudentService {
	return &StudentService{store: store, audit: audit, log: log}
}

func (s *StudentService) List(ctx context.Context, q repositories.ListQuery) ([]models.Student, int64, error) {
	students, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Error fetching students", err)
	}
	return students, total, nil
}

func (s *StudentService) Get(ctx context.Context, id uint, relations ...string) (*models.Student, error) {
	student, err := s.store.Get(ctx, id, relations...)
	if err == repositories.ErrNotFound {
		return nil, apperr.NotFound("Estudiante no encontrado")
	}
	if err != nil {
		return nil, apperr.Internal("Error fetching student", err)
	}
	return student, nil
}

// CheckRUT reports whether an ACTIVE student already holds the normalized
// RUT. Malformed input is a validation error, not a lookup.
func (s *StudentService) CheckRUT(ctx context.Context, rut string) (bool, error) {
	normalized := models.NormalizeRUT(rut)
	if !models.ValidRUT(normalized) {
		return false, apperr.Validation("Formato de RUT inválido")
	}

	n, err := s.store.Count(ctx, "rut = ? AND is_active = ?", normalized, true)
	if err != nil {
		return false, apperr.Internal("Error al verificar RUT", err)
	}
	return n > 0, nil
}

func (s *StudentService) Create(ctx context.Context, actorID *uint, payload []byte) (*models.Student, error) {
	var st models.Student
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, apperr.Validation("Invalid request body")
	}

	st.ID = 0
	if st.RUT == "" {
		return nil, apperr.Validation("El campo RUT es obligatorio")
	}
	st.RUT = models.NormalizeRUT(st.RUT)
	if !models.ValidRUT(st.RUT) {
		return nil, apperr.Validation("Formato de RUT inválido")
	}

	// At most one active student per normalized RUT; deactivated rows do not
	// block re-enrollment.
	n, err := s.store.Count(ctx, "rut = ? AND is_active = ?", st.RUT, true)
	if err != nil {
		return nil, apperr.Internal("Error al crear estudiante", err)
	}
	if n > 0 {
		return nil, apperr.Conflict("Ya existe un estudiante con este RUT")
	}

	st.IsActive = true
	st.DeletedAt = nil

	if err := s.store.Create(ctx, &st); err != nil {
		return nil, apperr.Internal("Error al crear estudiante", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "Student",
		EntityID:   &st.ID,
		Action:     models.AuditActionCreate,
		NewValues:  st,
		Details:    "Estudiante creado",
		Module:     models.ModuleStudents,
	})

	return &st, nil
}

func (s *StudentService) Update(ctx context.Context, actorID *uint, id uint, payload []byte) (*models.Student, error) {
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

	updated.RUT = models.NormalizeRUT(updated.RUT)
	if updated.RUT != existing.RUT {
		if !models.ValidRUT(updated.RUT) {
			return nil, apperr.Validation("Formato de RUT inválido")
		}
		n, err := s.store.Count(ctx, "rut = ? AND is_active = ? AND id <> ?", updated.RUT, true, id)
		if err != nil {
			return nil, apperr.Internal("Error al actualizar estudiante", err)
		}
		if n > 0 {
			return nil, apperr.Conflict("Ya existe otro estudiante con este RUT")
		}
	}

	if err := s.store.Save(ctx, &updated); err != nil {
		return nil, apperr.Internal("Error al actualizar estudiante", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "Student",
		EntityID:   &updated.ID,
		Action:     models.AuditActionUpdate,
		OldValues:  old,
		NewValues:  updated,
		Module:     models.ModuleStudents,
	})

	return &updated, nil
}

// Delete deactivates the student; the record and its history are retained.
func (s *StudentService) Delete(ctx context.Context, actorID *uint, id uint) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	old := *existing

	now := time.Now()
	existing.IsActive = false
	existing.DeletedAt = &now

	if err := s.store.Save(ctx, existing); err != nil {
		return apperr.Internal("Error al eliminar estudiante", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		EntityName: "Student",
		EntityID:   &existing.ID,
		Action:     models.AuditActionDelete,
		OldValues:  old,
		NewValues:  *existing,
		Module:     models.ModuleStudents,
	})

	return nil
}
