package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/appointment"
)

type Handler struct {
	service appointment.AppointmentService
	loc     *time.Location
}

func NewHandler(service appointment.AppointmentService, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

type listQuery struct {
	DoctorID  *int64 `form:"doctor_id"`
	PatientID *int64 `form:"patient_id"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type RescheduleRequest struct {
	Key    model.AppointmentKey           `json:"key"`
	Update model.UpdateAppointmentRequest `json:"update"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.ScheduleAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.POST("/cancel", h.CancelAppointment)
		appointments.POST("/reschedule", h.RescheduleAppointment)
	}
}

func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req model.Appointment
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.Schedule(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(req))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}

	var filters model.AppointmentFilters
	if q.DoctorID != nil {
		id := model.ID(*q.DoctorID)
		filters.DoctorID = &id
	}
	if q.PatientID != nil {
		id := model.ID(*q.PatientID)
		filters.PatientID = &id
	}
	if q.Date != "" {
		date, err := handler.ParseDate(q.Date, h.loc)
		if err != nil {
			handler.BindError(c, err)
			return
		}
		filters.Date = &date
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	var req model.AppointmentKey
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	outcome, err := h.service.Cancel(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "appointment")
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	outcome, err := h.service.Reschedule(c.Request.Context(), req.Key, req.Update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "appointment")
}
