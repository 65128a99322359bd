package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ListAppointmentsByDate returns a stylist's agenda for one day, every status
// included. Only the stylist and admins may read it.
type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actor domain.Actor,
	stylistID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if actor.Role != domain.RoleAdmin &&
		!(actor.Role == domain.RoleStylist && actor.UserID == stylistID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListByStylistDate(ctx, stylistID, day.Format(domain.DateLayout))
	if err != nil {
		return nil, httperr.StoreUnavailable(err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentList(ap))
	}

	return out, nil
}
