package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var transitionActions = map[domain.Status]string{
	domain.StatusConfirmed: audit.ActionAppointmentConfirmed,
	domain.StatusCompleted: audit.ActionAppointmentCompleted,
	domain.StatusCancelled: audit.ActionAppointmentCancelled,
}

// ChangeAppointmentStatus drives confirm, complete, cancel and notes edits.
// Each runs under the appointment's (stylist, date) lock so concurrent
// changes to one appointment are applied one at a time.
type ChangeAppointmentStatus struct {
	repo   domain.Repository
	locker domain.SlotLocker
	policy domain.CancellationPolicy
	clock  timezone.Clock
	audit  audit.Sink
	log    *zerolog.Logger
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	locker domain.SlotLocker,
	policy domain.CancellationPolicy,
	clock timezone.Clock,
	sink audit.Sink,
	log *zerolog.Logger,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:   repo,
		locker: locker,
		policy: policy,
		clock:  clock,
		audit:  sink,
		log:    orNop(log),
	}
}

func (uc *ChangeAppointmentStatus) Confirm(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Appointment, error) {
	return uc.transition(ctx, actor, id, domain.StatusConfirmed)
}

func (uc *ChangeAppointmentStatus) Complete(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Appointment, error) {
	return uc.transition(ctx, actor, id, domain.StatusCompleted)
}

// Cancel frees the slot. Owning clients are held to the cancellation window;
// staff are not.
func (uc *ChangeAppointmentStatus) Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Appointment, error) {
	return uc.transition(ctx, actor, id, domain.StatusCancelled)
}

func (uc *ChangeAppointmentStatus) EditNotes(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	notes string,
) (*models.Appointment, error) {

	return uc.mutate(ctx, id, func(ap *models.Appointment) (func(), error) {
		if err := domain.EditNotes(ap, actor, notes); err != nil {
			return nil, err
		}
		return func() {
			uc.dispatch(actor, audit.ActionAppointmentNotes, ap, nil)
		}, nil
	})
}

// CanCancel is advisory: it tells the caller whether a cancel issued now
// would pass. It takes no lock.
func (uc *ChangeAppointmentStatus) CanCancel(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
) (bool, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return false, lookupErr(err, httperr.CodeAppointmentNotFound)
	}
	if !domain.CanView(ap, actor) {
		return false, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if domain.Authorize(ap, actor, domain.StatusCancelled) != nil {
		return false, nil
	}
	if domain.IsStaff(ap, actor) {
		return true, nil
	}
	return uc.policy.CanCancel(ap, uc.clock.Now()), nil
}

func (uc *ChangeAppointmentStatus) transition(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
	to domain.Status,
) (*models.Appointment, error) {

	return uc.mutate(ctx, id, func(ap *models.Appointment) (func(), error) {
		from := ap.Status
		now := uc.clock.Now()

		if to == domain.StatusCancelled && !domain.IsStaff(ap, actor) {
			if err := domain.Authorize(ap, actor, to); err != nil {
				return nil, err
			}
			if !uc.policy.CanCancel(ap, now) {
				return nil, httperr.Errorf(httperr.CodeForbidden, "cancellation window closed")
			}
		}

		if err := domain.Transition(ap, actor, to, now); err != nil {
			return nil, err
		}
		if from == ap.Status {
			return nil, nil
		}

		return func() {
			uc.dispatch(actor, transitionActions[to], ap, map[string]any{
				"from": from,
				"to":   ap.Status,
			})
			metrics.IncTransition(ap.Status)

			uc.log.Info().
				Str("appointment_id", ap.ID.String()).
				Str("from", from).
				Str("to", ap.Status).
				Str("role", string(actor.Role)).
				Msg("appointment status changed")
		}, nil
	})
}

// mutate loads the appointment, applies change under the slot lock and
// persists the result. Nothing is written when change fails. The hook change
// returns, if any, runs after the write succeeded.
func (uc *ChangeAppointmentStatus) mutate(
	ctx context.Context,
	id uuid.UUID,
	change func(ap *models.Appointment) (saved func(), err error),
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeAppointmentNotFound)
	}

	unlock, err := uc.locker.Lock(ctx, domain.SlotKey(ap.StylistID, ap.Date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// re-read under the lock
	ap, err = uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeAppointmentNotFound)
	}

	saved, err := change(ap)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, lookupErr(err, httperr.CodeAppointmentNotFound)
	}
	if saved != nil {
		saved()
	}
	return ap, nil
}

func (uc *ChangeAppointmentStatus) dispatch(actor domain.Actor, action string, ap *models.Appointment, meta map[string]any) {
	if uc.audit == nil {
		return
	}
	userID := actor.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   audit.EntityAppointment,
		EntityID: ap.ID.String(),
		Metadata: meta,
	})
}
