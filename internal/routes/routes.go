package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons the API is built from.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Locker domain.SlotLocker
	Audit  audit.Sink
	Clock  timezone.Clock
	Logger *zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	loc := timezone.Location(d.Config.Timezone)
	policy := domain.NewCancellationPolicy(d.Config.CancellationWindow(), loc)

	clock := d.Clock
	if clock == nil {
		clock = timezone.SystemClock{Loc: loc}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		d.Locker,
		d.Audit,
		d.Logger,
	)

	statusUC := ucAppointment.NewChangeAppointmentStatus(
		appointmentRepo,
		d.Locker,
		policy,
		clock,
		d.Audit,
		d.Logger,
	)

	agendaUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	historyUC := ucAppointment.NewGetHistory(appointmentRepo, auditLogger)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		statusUC,
		agendaUC,
		availabilityUC,
		historyUC,
	)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(
		middleware.Timeout(d.Config.RequestTimeout),
		middleware.AuthMiddleware(d.Config),
	)
	{
		api.POST("/appointments", appointmentHandler.Create)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/notes", appointmentHandler.EditNotes)
		api.GET("/appointments/:id/can-cancel", appointmentHandler.CanCancel)
		api.GET("/appointments/:id/history", appointmentHandler.History)

		api.GET("/stylists/:id/appointments", appointmentHandler.ListByDate)
		api.GET("/stylists/:id/availability", appointmentHandler.Availability)

		api.GET("/me/working-hours", workingHoursHandler.Get)
		api.PUT("/me/working-hours", workingHoursHandler.Update)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
