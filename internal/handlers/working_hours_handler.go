package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// WorkingHoursHandler lets a stylist publish the weekly hours availability
// is computed from.
type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleStylist {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeForbidden))
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("stylist_id = ?", actor.UserID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.FromError(c, httperr.StoreUnavailable(err))
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleStylist {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeForbidden))
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear once.")
			return
		}
		seen[d.Weekday] = true

		if d.Active {
			if err := validateDay(d); err != nil {
				httperr.FromError(c, err)
				return
			}
		}

		toCreate = append(toCreate, models.WorkingHours{
			StylistID:  actor.UserID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stylist_id = ?", actor.UserID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.FromError(c, httperr.StoreUnavailable(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validateDay requires a non-empty working interval and, when set, a lunch
// break inside it.
func validateDay(d WorkingDayConfig) error {
	day, err := domain.SlotOf(d.StartTime, d.EndTime)
	if err != nil {
		return err
	}
	if day.Start >= day.End {
		return httperr.Errorf(httperr.CodeInvalidTimeFormat, "start_time must be before end_time")
	}

	if d.LunchStart == "" && d.LunchEnd == "" {
		return nil
	}
	lunch, err := domain.SlotOf(d.LunchStart, d.LunchEnd)
	if err != nil {
		return err
	}
	if lunch.Start >= lunch.End || lunch.Start < day.Start || lunch.End > day.End {
		return httperr.Errorf(httperr.CodeInvalidTimeFormat, "lunch must fall inside working hours")
	}
	return nil
}
