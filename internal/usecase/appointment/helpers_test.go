package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	adminID         uint = 1
	stylistID       uint = 10
	otherStylistID  uint = 11
	idleStylistID   uint = 12
	clientID        uint = 20
	otherClientID   uint = 21
	cutServiceID    uint = 1
	closedServiceID uint = 2
	colorServiceID  uint = 3

	testDate = "2026-01-10"
)

var (
	admin        = domain.Actor{UserID: adminID, Role: domain.RoleAdmin}
	stylist      = domain.Actor{UserID: stylistID, Role: domain.RoleStylist}
	otherStylist = domain.Actor{UserID: otherStylistID, Role: domain.RoleStylist}
	client       = domain.Actor{UserID: clientID, Role: domain.RoleClient}
	otherClient  = domain.Actor{UserID: otherClientID, Role: domain.RoleClient}
)

// ===============================
// In-memory repository
// ===============================

type memRepo struct {
	mu       sync.Mutex
	services map[uint]models.Service
	users    map[uint]models.User
	hours    map[[2]uint]models.WorkingHours
	apps     map[uuid.UUID]models.Appointment

	// afterList runs after ListByStylistDate has read its snapshot.
	afterList func()
}

func newMemRepo() *memRepo {
	r := &memRepo{
		services: map[uint]models.Service{},
		users:    map[uint]models.User{},
		hours:    map[[2]uint]models.WorkingHours{},
		apps:     map[uuid.UUID]models.Appointment{},
	}

	r.services[cutServiceID] = models.Service{ID: cutServiceID, Name: "Cut", DurationMin: 30, Price: 40, Active: true}
	r.services[closedServiceID] = models.Service{ID: closedServiceID, Name: "Perm", DurationMin: 60, Price: 90, Active: false}
	r.services[colorServiceID] = models.Service{ID: colorServiceID, Name: "Color", DurationMin: 90, Price: 120, Active: true}

	r.users[adminID] = models.User{ID: adminID, Name: "Owner", Role: models.RoleAdmin, Active: true}
	r.users[stylistID] = models.User{ID: stylistID, Name: "Ana", Role: models.RoleStylist, Active: true}
	r.users[otherStylistID] = models.User{ID: otherStylistID, Name: "Caio", Role: models.RoleStylist, Active: true}
	r.users[idleStylistID] = models.User{ID: idleStylistID, Name: "Duda", Role: models.RoleStylist, Active: false}
	r.users[clientID] = models.User{ID: clientID, Name: "Bia", Role: models.RoleClient, Active: true}
	r.users[otherClientID] = models.User{ID: otherClientID, Name: "Edu", Role: models.RoleClient, Active: true}
	return r
}

func (r *memRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (r *memRepo) GetStylist(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Role != models.RoleStylist {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) GetWorkingHours(_ context.Context, id uint, weekday int) (*models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wh, ok := r.hours[[2]uint{id, uint(weekday)}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &wh, nil
}

func (r *memRepo) setHours(wh models.WorkingHours) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[[2]uint{wh.StylistID, uint(wh.Weekday)}] = wh
}

func (r *memRepo) ListByStylistDate(_ context.Context, id uint, date string, statuses ...domain.Status) ([]models.Appointment, error) {
	r.mu.Lock()
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.StylistID != id || ap.Date != date {
			continue
		}
		if len(statuses) > 0 && !hasStatus(statuses, ap.Status) {
			continue
		}
		out = append(out, ap)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })

	if r.afterList != nil {
		r.afterList()
	}
	return out, nil
}

func hasStatus(statuses []domain.Status, s string) bool {
	for _, x := range statuses {
		if string(x) == s {
			return true
		}
	}
	return false
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	r.apps[ap.ID] = *ap
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

// UpdateAppointment mirrors the gorm repository: only mutable columns change.
func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.apps[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = ap.Status
	cur.Notes = ap.Notes
	cur.ConfirmedAt = ap.ConfirmedAt
	cur.CompletedAt = ap.CompletedAt
	cur.CancelledAt = ap.CancelledAt
	cur.UpdatedAt = time.Now()
	r.apps[ap.ID] = cur
	return nil
}

func (r *memRepo) put(ap models.Appointment) models.Appointment {
	_ = r.CreateAppointment(context.Background(), &ap)
	return ap
}

func (r *memRepo) activeCount(id uint, date string) int {
	apps, _ := r.ListByStylistDate(context.Background(), id, date, domain.ActiveStatuses...)
	return len(apps)
}

var _ domain.Repository = (*memRepo)(nil)

// ===============================
// Mock repository
// ===============================

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockRepo) GetStylist(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockRepo) GetWorkingHours(ctx context.Context, id uint, weekday int) (*models.WorkingHours, error) {
	args := m.Called(ctx, id, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkingHours), args.Error(1)
}

func (m *mockRepo) ListByStylistDate(ctx context.Context, id uint, date string, statuses ...domain.Status) ([]models.Appointment, error) {
	args := m.Called(ctx, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *mockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *mockRepo) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *mockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

// ===============================
// Collaborators
// ===============================

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

// failingLocker never grants the lock.
type failingLocker struct {
	err error
}

func (l failingLocker) Lock(context.Context, string) (func(), error) {
	return nil, l.err
}

func pending(start, end string) models.Appointment {
	return models.Appointment{
		ClientID:  clientID,
		StylistID: stylistID,
		ServiceID: cutServiceID,
		Date:      testDate,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.StatusPending),
		Price:     40,
	}
}
