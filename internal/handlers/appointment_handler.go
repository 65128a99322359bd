package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book         *ucAppointment.BookAppointment
	status       *ucAppointment.ChangeAppointmentStatus
	agenda       *ucAppointment.ListAppointmentsByDate
	availability *ucAppointment.GetAvailability
	history      *ucAppointment.GetHistory
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	status *ucAppointment.ChangeAppointmentStatus,
	agenda *ucAppointment.ListAppointmentsByDate,
	availability *ucAppointment.GetAvailability,
	history *ucAppointment.GetHistory,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:         book,
		status:       status,
		agenda:       agenda,
		availability: availability,
		history:      history,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	ClientID  uint   `json:"client_id"`
	StylistID uint   `json:"stylist_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	Notes     string `json:"notes" binding:"max=255"`
}

type EditNotesRequest struct {
	Notes string `json:"notes" binding:"max=255"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	// clients book for themselves; staff book on a client's behalf
	clientID := actor.UserID
	if actor.Role != domain.RoleClient {
		if req.ClientID == 0 {
			httperr.BadRequest(c, "missing_client_id", "client_id is required.")
			return
		}
		clientID = req.ClientID
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ClientID:  clientID,
		StylistID: req.StylistID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.status.Confirm)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.status.Complete)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.status.Cancel)
}

type statusFunc = func(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Appointment, error)

func (h *AppointmentHandler) changeStatus(c *gin.Context, change statusFunc) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := change(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) EditNotes(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req EditNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.status.EditNotes(c.Request.Context(), middleware.ActorFrom(c), id, req.Notes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CanCancel(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	allowed, err := h.status.CanCancel(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"can_cancel": allowed})
}

func (h *AppointmentHandler) History(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	logs, err := h.history.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, logs)
}

// ======================================================
// STYLIST DAY
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	stylistID, ok := stylistParam(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	agenda, err := h.agenda.Execute(c.Request.Context(), middleware.ActorFrom(c), stylistID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, agenda)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	stylistID, ok := stylistParam(c)
	if !ok {
		return
	}

	date := c.Query("date")
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if date == "" || err != nil {
		httperr.BadRequest(c, "missing_params", "date and service_id are required.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		StylistID: stylistID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// HELPERS
// ======================================================

func appointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeAppointmentNotFound))
		return uuid.Nil, false
	}
	return id, true
}

func stylistParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeStylistNotFound))
		return 0, false
	}
	return uint(id), true
}
