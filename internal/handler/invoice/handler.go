package invoice

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/invoice"
)

type Handler struct {
	service invoice.InvoiceService
	loc     *time.Location
}

func NewHandler(service invoice.InvoiceService, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

type listQuery struct {
	PatientID *int64 `form:"patient_id"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Month is zero based, matching MonthlyTotal.
type monthlyTotalQuery struct {
	Month *int `form:"month" binding:"required,min=0,max=11"`
	Year  int  `form:"year" binding:"required,min=1"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invoices := r.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/monthly-total", h.MonthlyTotal)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PATCH("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.GET("/:id/items", h.GetItems)
	}
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var req model.Invoice
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

func (h *Handler) ListInvoices(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}

	var filters model.InvoiceFilters
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

	invoices, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(invoices))
}

func (h *Handler) MonthlyTotal(c *gin.Context) {
	var q monthlyTotalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	total, err := h.service.MonthlyTotal(c.Request.Context(), *q.Month, q.Year)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"month": *q.Month,
		"year":  q.Year,
		"total": total,
	}))
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondFound(c, inv != nil, inv, "invoice")
}

func (h *Handler) UpdateInvoice(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	outcome, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "invoice")
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "invoice")
}

// GetItems resolves the consumed item ids. Missing items appear as null.
func (h *Handler) GetItems(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.Items(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
