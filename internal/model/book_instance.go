package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookStatus string

const (
	StatusAvailable   BookStatus = "Available"
	StatusMaintenance BookStatus = "Maintenance"
	StatusLoaned      BookStatus = "Loaned"
	StatusReserved    BookStatus = "Reserved"
)

// Statuses is the display order used by instance forms.
var Statuses = []BookStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

func (s BookStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// BookInstance.Book is nil when the referenced book no longer exists.
type BookInstance struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Book      *Book      `gorm:"foreignKey:BookID"`
	Imprint   string     `gorm:"not null"`
	Status    BookStatus `gorm:"size:20;not null;default:Maintenance;index"`
	DueBack   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (bi *BookInstance) BeforeCreate(tx *gorm.DB) (err error) {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	if bi.Status == "" {
		bi.Status = StatusMaintenance
	}
	return
}

func (bi BookInstance) URL() string {
	return EntityURL(KindBookInstance, bi.ID)
}

func (bi BookInstance) DueBackFormatted() string {
	return shortDate(bi.DueBack)
}
