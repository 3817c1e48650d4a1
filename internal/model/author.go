package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"size:100;not null"`
	FamilyName  string    `gorm:"size:100;not null;index"`
	DateOfBirth *time.Time
	DateOfDeath *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Name is empty unless both name parts are present.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FirstName + " " + a.FamilyName
}

// Lifespan renders "birth - death", leaving out whichever side is unknown.
func (a Author) Lifespan() string {
	birth := longDate(a.DateOfBirth)
	death := longDate(a.DateOfDeath)
	if birth == "" && death == "" {
		return ""
	}
	return birth + " - " + death
}

func (a Author) URL() string {
	return EntityURL(KindAuthor, a.ID)
}
