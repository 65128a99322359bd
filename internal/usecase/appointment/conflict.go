package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ConflictChecker finds an active appointment overlapping a candidate slot.
// It has no side effects and never reports "no conflict" when the store failed.
type ConflictChecker struct {
	repo domain.Repository
}

func NewConflictChecker(repo domain.Repository) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// FindConflict returns the first overlapping appointment, or nil. Appointments
// whose id is in exclude are ignored.
func (c *ConflictChecker) FindConflict(
	ctx context.Context,
	stylistID uint,
	date string,
	candidate domain.Slot,
	exclude ...uuid.UUID,
) (*models.Appointment, error) {

	existing, err := c.repo.ListByStylistDate(ctx, stylistID, date, domain.ActiveStatuses...)
	if err != nil {
		return nil, httperr.StoreUnavailable(err)
	}

	for i := range existing {
		ap := &existing[i]
		if excluded(ap.ID, exclude) {
			continue
		}

		slot, err := domain.SlotOf(ap.StartTime, ap.EndTime)
		if err != nil {
			// an unreadable row cannot be proven free
			return ap, nil
		}
		if slot.Overlaps(candidate) {
			return ap, nil
		}
	}

	return nil, nil
}

func excluded(id uuid.UUID, ids []uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
