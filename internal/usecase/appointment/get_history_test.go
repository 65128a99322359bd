package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type historyStub struct {
	logs []models.AuditLog
	err  error

	entity, entityID string
}

func (h *historyStub) History(_ context.Context, entity, entityID string) ([]models.AuditLog, error) {
	h.entity, h.entityID = entity, entityID
	return h.logs, h.err
}

func TestGetHistory(t *testing.T) {
	repo := newMemRepo()
	ap := repo.put(pending("10:00", "10:30"))

	stub := &historyStub{logs: []models.AuditLog{
		{Action: audit.ActionAppointmentCreated, EntityID: ap.ID.String()},
		{Action: audit.ActionAppointmentConfirmed, EntityID: ap.ID.String()},
	}}
	uc := NewGetHistory(repo, stub)

	logs, err := uc.Execute(context.Background(), client, ap.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, audit.EntityAppointment, stub.entity)
	assert.Equal(t, ap.ID.String(), stub.entityID)

	_, err = uc.Execute(context.Background(), otherClient, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden), "err = %v", err)

	_, err = uc.Execute(context.Background(), admin, uuid.New())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound), "err = %v", err)
}

func TestGetHistoryStoreError(t *testing.T) {
	repo := newMemRepo()
	ap := repo.put(pending("10:00", "10:30"))

	uc := NewGetHistory(repo, &historyStub{err: errors.New("gone")})

	_, err := uc.Execute(context.Background(), stylist, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStoreUnavailable), "err = %v", err)
}
