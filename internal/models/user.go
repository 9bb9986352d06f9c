package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is a staff or admin account. The bcrypt hash never serializes:
// the json:"-" tag covers every response path, including preloaded
// relations and audit snapshots.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	RUT       string         `json:"rut" gorm:"column:rut;uniqueIndex;not null"`
	Role      string         `json:"role" gorm:"default:User"`
	Permisos  datatypes.JSON `json:"permisos,omitempty"`

	// Staff profile
	StaffType        string         `json:"staffType"`
	SubjectsTeaching datatypes.JSON `json:"subjectsTeaching,omitempty"`
	Position         string         `json:"position"`
	Department       string         `json:"department"`
	Especialidad     string         `json:"especialidad"`
	RegistroSecreduc string         `json:"registroSecreduc"`
	MencionesExtra   datatypes.JSON `json:"mencionesExtra,omitempty"`

	// Contact
	PhoneNumber      string         `json:"phoneNumber"`
	BirthDate        *time.Time     `json:"birthDate"`
	Address          string         `json:"address"`
	Comuna           string         `json:"comuna"`
	Region           string         `json:"region"`
	EmergencyContact datatypes.JSON `json:"emergencyContact,omitempty"`

	// Employment
	TipoContrato       string         `json:"tipoContrato"`
	HorasContrato      int            `json:"horasContrato"`
	FechaIngreso       *time.Time     `json:"fechaIngreso"`
	BieniosReconocidos int            `json:"bieniosReconocidos"`
	EvaluacionDocente  datatypes.JSON `json:"evaluacionDocente,omitempty"`

	ConfiguracionNotificaciones datatypes.JSON `json:"configuracionNotificaciones,omitempty"`

	// Account state
	IsActive         bool       `json:"isActive" gorm:"default:true"`
	LastLogin        *time.Time `json:"lastLogin"`
	LoginAttempts    int        `json:"loginAttempts"`
	LastLoginAttempt *time.Time `json:"lastLoginAttempt"`
	DeletedAt        *time.Time `json:"deletedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// PublicView is the shape returned by login: the identity subset a client
// needs, nothing more.
func (u *User) PublicView() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"role":      u.Role,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
	}
}
