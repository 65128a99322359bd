package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses block a slot; the rest free it.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func InitialStatus() Status {
	return StatusPending
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Callers
// ===============================

type Role string

const (
	RoleClient  Role = models.RoleClient
	RoleStylist Role = models.RoleStylist
	RoleAdmin   Role = models.RoleAdmin
)

// Actor is the authenticated caller, as supplied by the identity layer.
type Actor struct {
	UserID uint
	Role   Role
}

// party is the relation between a caller and one appointment.
type party uint8

const (
	partyAdmin party = 1 << iota
	partyAssignedStylist
	partyOwningClient
)

func relation(ap *models.Appointment, actor Actor) party {
	var p party
	switch actor.Role {
	case RoleAdmin:
		p |= partyAdmin
	case RoleStylist:
		if ap.StylistID == actor.UserID {
			p |= partyAssignedStylist
		}
	case RoleClient:
		if ap.ClientID == actor.UserID {
			p |= partyOwningClient
		}
	}
	return p
}

// ===============================
// Transition table
// ===============================

const staff = partyAdmin | partyAssignedStylist

// transitions lists every permitted edge and who may take it. A self edge is
// a notes-only edit.
var transitions = map[Status]map[Status]party{
	StatusPending: {
		StatusPending:   staff,
		StatusConfirmed: staff,
		StatusCancelled: staff | partyOwningClient,
	},
	StatusConfirmed: {
		StatusConfirmed: staff,
		StatusCompleted: staff,
		StatusCancelled: staff | partyOwningClient,
	},
}

// CanTransition reports whether the edge exists, ignoring the caller.
func CanTransition(from, to Status) bool {
	_, ok := transitions[from][to]
	return ok
}

// entrants returns every party allowed on some edge into to, self edges
// excluded.
func entrants(to Status) party {
	var p party
	for from, row := range transitions {
		if from == to {
			continue
		}
		p |= row[to]
	}
	return p
}

// Authorize checks that actor may move ap to the target status. Unrelated
// callers, and callers who may never reach to from any status, are rejected
// before the table is consulted.
func Authorize(ap *models.Appointment, actor Actor, to Status) error {
	rel := relation(ap, actor)
	if rel == 0 {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if in := entrants(to); in != 0 && rel&in == 0 {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	allowed, ok := transitions[Status(ap.Status)][to]
	if !ok {
		return httperr.Errorf(
			httperr.CodeInvalidTransition,
			"cannot move appointment from "+ap.Status+" to "+string(to),
		)
	}

	if rel&allowed == 0 {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}

// IsStaff reports whether actor acts as admin or assigned stylist on ap.
func IsStaff(ap *models.Appointment, actor Actor) bool {
	return relation(ap, actor)&staff != 0
}

// ===============================
// Domain Actions
// ===============================

// Transition is the only mutator of ap.Status. ap is unchanged on error.
func Transition(ap *models.Appointment, actor Actor, to Status, now time.Time) error {
	if err := Authorize(ap, actor, to); err != nil {
		return err
	}

	if Status(ap.Status) == to {
		return nil
	}

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	ap.Status = string(to)
	return nil
}

// EditNotes replaces the notes of an active appointment.
func EditNotes(ap *models.Appointment, actor Actor, notes string) error {
	if err := Authorize(ap, actor, Status(ap.Status)); err != nil {
		return err
	}
	ap.Notes = notes
	return nil
}

// CanView reports whether actor is related to ap at all.
func CanView(ap *models.Appointment, actor Actor) bool {
	return relation(ap, actor) != 0
}
