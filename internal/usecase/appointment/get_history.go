package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type HistoryReader interface {
	History(ctx context.Context, entity, entityID string) ([]models.AuditLog, error)
}

// GetHistory returns the audit trail of one appointment to anyone related to it.
type GetHistory struct {
	repo    domain.Repository
	history HistoryReader
}

func NewGetHistory(repo domain.Repository, history HistoryReader) *GetHistory {
	return &GetHistory{repo: repo, history: history}
}

func (uc *GetHistory) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uuid.UUID,
) ([]models.AuditLog, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, lookupErr(err, httperr.CodeAppointmentNotFound)
	}
	if !domain.CanView(ap, actor) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	logs, err := uc.history.History(ctx, audit.EntityAppointment, ap.ID.String())
	if err != nil {
		return nil, httperr.StoreUnavailable(err)
	}
	return logs, nil
}
