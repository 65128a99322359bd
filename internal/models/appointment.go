package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`

	ClientID  uint `gorm:"not null;index" json:"client_id"`
	StylistID uint `gorm:"not null;index:idx_appointments_stylist_date" json:"stylist_id"`
	ServiceID uint `gorm:"not null" json:"service_id"`

	Date      string `gorm:"size:10;not null;index:idx_appointments_stylist_date" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Status string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes  string  `gorm:"size:255" json:"notes"`
	Price  float64 `gorm:"not null" json:"price"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		a.ID = id
	}
	return nil
}
