package models

import (
	"time"

	"gorm.io/datatypes"
)

// Intervention is a welfare case opened for a single student, reported by an
// informer and owned by a responsible staff member. Cases are hard-deleted;
// there is no soft-delete flag on this entity, and no author-only restriction
// on mutation — any authenticated staff member may update or close a case.
type Intervention struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type" gorm:"index"`
	Status      string `json:"status" gorm:"index"`
	Priority    string `json:"priority" gorm:"index"`

	DateReported time.Time  `json:"dateReported" gorm:"index"`
	DateResolved *time.Time `json:"dateResolved"`
	FollowUpDate *time.Time `json:"followUpDate"`

	InterventionScope        string         `json:"interventionScope"`
	ActionsTaken             datatypes.JSON `json:"actionsTaken,omitempty"`
	OutcomeEvaluation        string         `json:"outcomeEvaluation"`
	ParentFeedback           string         `json:"parentFeedback"`
	RequiresExternalReferral bool           `json:"requiresExternalReferral"`
	ExternalReferralDetails  string         `json:"externalReferralDetails"`
	Documentacion            datatypes.JSON `json:"documentacion,omitempty"`
	Acuerdos                 datatypes.JSON `json:"acuerdos,omitempty"`
	SeguimientoPIE           datatypes.JSON `json:"seguimientoPIE,omitempty"`
	EstrategiasImplementadas datatypes.JSON `json:"estrategiasImplementadas,omitempty"`
	Recursos                 datatypes.JSON `json:"recursos,omitempty"`
	Observaciones            string         `json:"observaciones"`

	StudentID     uint     `json:"studentId" gorm:"index;not null"`
	Student       *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	InformerID    uint     `json:"informerId" gorm:"index"`
	Informer      *User    `json:"informer,omitempty" gorm:"foreignKey:InformerID"`
	ResponsibleID uint     `json:"responsibleId" gorm:"index"`
	Responsible   *User    `json:"responsible,omitempty" gorm:"foreignKey:ResponsibleID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
