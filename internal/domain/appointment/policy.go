package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DefaultCancellationWindow = 24 * time.Hour

// CancellationPolicy decides whether an owning client may still cancel.
// Staff cancellations are not subject to it.
type CancellationPolicy struct {
	Window   time.Duration
	Location *time.Location
}

func NewCancellationPolicy(window time.Duration, loc *time.Location) CancellationPolicy {
	if window <= 0 {
		window = DefaultCancellationWindow
	}
	if loc == nil {
		loc = time.UTC
	}
	return CancellationPolicy{Window: window, Location: loc}
}

// CanCancel is true only while more than Window remains before the start.
func (p CancellationPolicy) CanCancel(ap *models.Appointment, now time.Time) bool {
	if !Status(ap.Status).IsActive() {
		return false
	}

	start, err := StartInstant(ap.Date, ap.StartTime, p.Location)
	if err != nil {
		return false
	}

	return start.Sub(now) > p.Window
}
