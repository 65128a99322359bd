package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrNotFound is returned by a Repository when the record does not exist.
// Any other error means the store itself failed.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Service catalog --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Stylist directory --------
	GetStylist(
		ctx context.Context,
		stylistID uint,
	) (*models.User, error)

	GetWorkingHours(
		ctx context.Context,
		stylistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Appointments --------

	// ListByStylistDate returns the stylist's appointments on date ordered by
	// start time. With no statuses every appointment is returned.
	ListByStylistDate(
		ctx context.Context,
		stylistID uint,
		date string,
		statuses ...Status,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}

// SlotLocker serializes conflict-check-then-insert for one key.
type SlotLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// SlotKey scopes locking to one stylist on one day.
func SlotKey(stylistID uint, date string) string {
	return fmt.Sprintf("slot:%d:%s", stylistID, date)
}
