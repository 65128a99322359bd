package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookAppointmentInput struct {
	ClientID  uint
	StylistID uint
	ServiceID uint
	Date      string
	StartTime string
	Notes     string
}

type BookAppointment struct {
	repo    domain.Repository
	checker *ConflictChecker
	locker  domain.SlotLocker
	audit   audit.Sink
	log     *zerolog.Logger
}

func NewBookAppointment(
	repo domain.Repository,
	locker domain.SlotLocker,
	sink audit.Sink,
	log *zerolog.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:    repo,
		checker: NewConflictChecker(repo),
		locker:  locker,
		audit:   sink,
		log:     orNop(log),
	}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.book(ctx, in)
	if err != nil {
		metrics.IncBookingRejected(httperr.CodeOf(err))
		return nil, err
	}

	metrics.IncBookingCreated()
	return ap, nil
}

func (uc *BookAppointment) book(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Date and start time
	// --------------------------------------------------
	day, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	date := day.Format(domain.DateLayout)

	start, err := domain.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeServiceNotFound)
	}
	if !svc.Active || svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	// --------------------------------------------------
	// 3. Stylist
	// --------------------------------------------------
	stylist, err := uc.repo.GetStylist(ctx, in.StylistID)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeStylistNotFound)
	}
	if !stylist.Active || stylist.Role != models.RoleStylist {
		return nil, httperr.ErrBusiness(httperr.CodeStylistNotFound)
	}

	// --------------------------------------------------
	// 4. End time from the service duration
	// --------------------------------------------------
	end, err := domain.ComputeEndTime(start, svc.DurationMin)
	if err != nil {
		return nil, err
	}
	slot := domain.Slot{Start: start, End: end}

	// --------------------------------------------------
	// 5. Conflict check under the (stylist, date) lock
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, domain.SlotKey(in.StylistID, date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	conflict, err := uc.checker.FindConflict(ctx, in.StylistID, date, slot)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		// Keyed to the stylist day so another client's history never shows it.
		uc.dispatch(in.ClientID, audit.ActionAppointmentConflict, audit.EntityStylistDay, domain.SlotKey(in.StylistID, date), map[string]any{
			"stylist_id":  in.StylistID,
			"date":        date,
			"start_time":  start.String(),
			"end_time":    end.String(),
			"conflict_id": conflict.ID.String(),
		})
		return nil, httperr.Errorf(
			httperr.CodeSlotUnavailable,
			fmt.Sprintf("stylist is busy %s-%s", conflict.StartTime, conflict.EndTime),
		)
	}

	// --------------------------------------------------
	// 6. Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:  in.ClientID,
		StylistID: in.StylistID,
		ServiceID: in.ServiceID,
		Date:      date,
		StartTime: start.String(),
		EndTime:   end.String(),
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
		Price:     svc.Price,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, httperr.StoreUnavailable(err)
	}

	// --------------------------------------------------
	// 7. Log and audit
	// --------------------------------------------------
	uc.log.Info().
		Str("appointment_id", ap.ID.String()).
		Uint("stylist_id", ap.StylistID).
		Str("date", ap.Date).
		Str("start_time", ap.StartTime).
		Msg("appointment booked")

	uc.dispatch(in.ClientID, audit.ActionAppointmentCreated, audit.EntityAppointment, ap.ID.String(), map[string]any{
		"stylist_id": ap.StylistID,
		"service_id": ap.ServiceID,
		"date":       ap.Date,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"price":      ap.Price,
	})

	return ap, nil
}

func (uc *BookAppointment) dispatch(userID uint, action, entity, entityID string, meta map[string]any) {
	if uc.audit == nil {
		return
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}

// lookupErr maps a missing record to code and anything else to store_unavailable.
func lookupErr(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return httperr.StoreUnavailable(err)
}

func orNop(log *zerolog.Logger) *zerolog.Logger {
	if log != nil {
		return log
	}
	nop := zerolog.Nop()
	return &nop
}
