package models

import (
	"time"

	"gorm.io/datatypes"
)

// InterventionComment is a threaded note on a case. Authorship is the one
// ownership rule in the entity layer: only the authoring user may update or
// delete their comment.
type InterventionComment struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Content    string         `json:"content" gorm:"not null"`
	Tipo       string         `json:"tipo"`
	Evidencias datatypes.JSON `json:"evidencias,omitempty"`
	IsPrivate  bool           `json:"isPrivate"`

	InterventionID uint          `json:"interventionId" gorm:"index;not null"`
	Intervention   *Intervention `json:"intervention,omitempty" gorm:"foreignKey:InterventionID"`
	UserID         uint          `json:"userId" gorm:"index;not null"`
	User           *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
