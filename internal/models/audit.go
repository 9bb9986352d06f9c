package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions. Spanish tags are kept as stored by the school's existing
// records.
const (
	AuditActionCreate       = "CREAR"
	AuditActionUpdate       = "MODIFICAR"
	AuditActionDelete       = "ELIMINAR"
	AuditActionLoginSuccess = "LOGIN_SUCCESS"
	AuditActionLoginFailed  = "LOGIN_FAILED"
	AuditActionLogout       = "LOGOUT"
	AuditActionTokenRefresh = "TOKEN_REFRESH"
)

// Subsystem tags recorded in the audit module column.
const (
	ModuleAuth          = "AUTH"
	ModuleUsers         = "USUARIOS"
	ModuleStudents      = "ESTUDIANTES"
	ModuleInterventions = "INTERVENCIONES"
	ModuleComments      = "COMENTARIOS_INTERVENCIONES"
)

// Audit is an append-only log row. Rows are only ever written by the audit
// recorder; the HTTP surface exposes reads and rejects every mutation.
// UserID is a weak reference so entries survive user deactivation, and is
// null for failed-auth events.
type Audit struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     *uint          `json:"userId" gorm:"index"`
	User       *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	EntityName string         `json:"entityName" gorm:"index;not null"`
	EntityID   *uint          `json:"entityId" gorm:"index"`
	Action     string         `json:"action" gorm:"index;not null"`
	OldValues  datatypes.JSON `json:"oldValues,omitempty"`
	NewValues  datatypes.JSON `json:"newValues,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	Module     string         `json:"module" gorm:"index"`
	Details    string         `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
