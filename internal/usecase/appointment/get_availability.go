package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type AvailabilityInput struct {
	StylistID uint
	ServiceID uint
	Date      string
}

// GetAvailability lists the free slots of one stylist for one service on a
// day, stepping by the service duration through the working hours.
type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]dto.TimeSlotDTO, error) {

	day, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	date := day.Format(domain.DateLayout)

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeServiceNotFound)
	}
	if !svc.Active || svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	stylist, err := uc.repo.GetStylist(ctx, in.StylistID)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeStylistNotFound)
	}
	if !stylist.Active {
		return nil, httperr.ErrBusiness(httperr.CodeStylistNotFound)
	}

	slots := []dto.TimeSlotDTO{}

	wh, err := uc.repo.GetWorkingHours(ctx, in.StylistID, int(day.Weekday()))
	if errors.Is(err, domain.ErrNotFound) {
		return slots, nil
	}
	if err != nil {
		return nil, httperr.StoreUnavailable(err)
	}
	if !wh.Active {
		return slots, nil
	}

	// malformed working hours mean a closed day
	hours, err := domain.SlotOf(wh.StartTime, wh.EndTime)
	if err != nil {
		return slots, nil
	}

	var lunch *domain.Slot
	if wh.LunchStart != "" && wh.LunchEnd != "" {
		if l, err := domain.SlotOf(wh.LunchStart, wh.LunchEnd); err == nil {
			lunch = &l
		}
	}

	existing, err := uc.repo.ListByStylistDate(ctx, in.StylistID, date, domain.ActiveStatuses...)
	if err != nil {
		return nil, httperr.StoreUnavailable(err)
	}

	busy := make([]domain.Slot, 0, len(existing))
	for _, ap := range existing {
		s, err := domain.SlotOf(ap.StartTime, ap.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, s)
	}

	step := domain.TimeOfDay(svc.DurationMin)
	for cur := hours.Start; cur+step <= hours.End; cur += step {
		candidate := domain.Slot{Start: cur, End: cur + step}

		if lunch != nil && candidate.Overlaps(*lunch) {
			continue
		}
		if overlapsAny(candidate, busy) {
			continue
		}

		slots = append(slots, dto.TimeSlotDTO{
			Start: candidate.Start.String(),
			End:   candidate.End.String(),
		})
	}

	return slots, nil
}

func overlapsAny(s domain.Slot, busy []domain.Slot) bool {
	for _, b := range busy {
		if s.Overlaps(b) {
			return true
		}
	}
	return false
}
