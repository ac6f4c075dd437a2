package doctor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/doctor"
)

type Handler struct {
	service doctor.DoctorService
	loc     *time.Location
}

func NewHandler(service doctor.DoctorService, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

type dateQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/count", h.CountDoctors)
		doctors.GET("/available", h.AvailableDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PATCH("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
		doctors.GET("/:id/availability", h.GetAvailability)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.Doctor
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(req))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) CountDoctors(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"count": count}))
}

func (h *Handler) AvailableDoctors(c *gin.Context) {
	date, ok := h.bindDate(c)
	if !ok {
		return
	}
	doctors, err := h.service.AvailableOn(c.Request.Context(), date)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondFound(c, d != nil, d, "doctor")
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	outcome, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "doctor")
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "doctor")
}

func (h *Handler) GetAvailability(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	date, ok := h.bindDate(c)
	if !ok {
		return
	}
	available, err := h.service.IsAvailable(c.Request.Context(), id, date)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"available": available}))
}

func (h *Handler) bindDate(c *gin.Context) (time.Time, bool) {
	var q dateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return time.Time{}, false
	}
	date, err := handler.ParseDate(q.Date, h.loc)
	if err != nil {
		handler.BindError(c, err)
		return time.Time{}, false
	}
	return date, true
}
