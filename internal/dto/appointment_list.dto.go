package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uint      `json:"client_id"`
	ServiceID uint      `json:"service_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	Price     float64   `json:"price"`
}

func AppointmentList(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:        ap.ID,
		ClientID:  ap.ClientID,
		ServiceID: ap.ServiceID,
		Date:      ap.Date,
		StartTime: ap.StartTime,
		EndTime:   ap.EndTime,
		Status:    ap.Status,
		Notes:     ap.Notes,
		Price:     ap.Price,
	}
}

type TimeSlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
