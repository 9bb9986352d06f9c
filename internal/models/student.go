package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student is the welfare subject. The school stores a wide, loosely
// structured profile; the structured blobs stay opaque JSON so the intake
// forms can evolve without schema churn.
//
// Invariant: at most one ACTIVE student per normalized RUT. Deactivated rows
// keep their RUT, which is why the column carries a plain index instead of a
// unique one — re-enrollment reuses the same RUT on a new row.
type Student struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	RUT         string     `json:"rut" gorm:"column:rut;index;not null"`
	Email       string     `json:"email"`
	BirthDate   *time.Time `json:"birthDate"`
	Gender      string     `json:"gender"`
	Nationality string     `json:"nationality"`

	// Schooling
	Grade            string         `json:"grade"`
	AcademicYear     string         `json:"academicYear"`
	Section          string         `json:"section"`
	MatriculaNumber  string         `json:"matriculaNumber"`
	EnrollmentStatus string         `json:"enrollmentStatus"`
	PreviousSchool   string         `json:"previousSchool"`
	SimceResults     datatypes.JSON `json:"simceResults,omitempty"`
	AcademicRecord   datatypes.JSON `json:"academicRecord,omitempty"`
	Attendance       datatypes.JSON `json:"attendance,omitempty"`

	// Household
	Address             string         `json:"address"`
	Comuna              string         `json:"comuna"`
	Region              string         `json:"region"`
	ApoderadoTitular    datatypes.JSON `json:"apoderadoTitular,omitempty"`
	ApoderadoSuplente   datatypes.JSON `json:"apoderadoSuplente,omitempty"`
	GrupoFamiliar       datatypes.JSON `json:"grupoFamiliar,omitempty"`
	ContactosEmergencia datatypes.JSON `json:"contactosEmergencia,omitempty"`

	// Health
	Prevision          string         `json:"prevision"`
	GrupoSanguineo     string         `json:"grupoSanguineo"`
	CondicionesMedicas datatypes.JSON `json:"condicionesMedicas,omitempty"`
	Alergias           datatypes.JSON `json:"alergias,omitempty"`
	Medicamentos       datatypes.JSON `json:"medicamentos,omitempty"`

	// PIE (Programa de Integración Escolar)
	DiagnosticoPIE        string         `json:"diagnosticoPIE"`
	NecesidadesEducativas datatypes.JSON `json:"necesidadesEducativas,omitempty"`
	ApoyosPIE             datatypes.JSON `json:"apoyosPIE,omitempty"`

	// Benefits
	BeneficioJUNAEB     bool           `json:"beneficioJUNAEB"`
	TipoBeneficioJUNAEB string         `json:"tipoBeneficioJUNAEB"`
	Prioritario         bool           `json:"prioritario"`
	Preferente          bool           `json:"preferente"`
	Becas               datatypes.JSON `json:"becas,omitempty"`

	// Convivencia
	RegistroConvivencia   datatypes.JSON `json:"registroConvivencia,omitempty"`
	MedidasDisciplinarias datatypes.JSON `json:"medidasDisciplinarias,omitempty"`
	Reconocimientos       datatypes.JSON `json:"reconocimientos,omitempty"`

	IsActive      bool       `json:"isActive" gorm:"default:true"`
	Observaciones string     `json:"observaciones"`
	DeletedAt     *time.Time `json:"deletedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
