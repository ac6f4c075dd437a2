package item

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/billing"
)

type Handler struct {
	service billing.ItemService
}

func NewHandler(service billing.ItemService) *Handler {
	return &Handler{service: service}
}

type listQuery struct {
	Kind string `form:"kind" binding:"omitempty,oneof=Servicio Producto"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req model.BillableItem
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

// ListItems returns every item, or only those of ?kind=.
func (h *Handler) ListItems(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}

	var (
		items []model.BillableItem
		err   error
	)
	if q.Kind != "" {
		items, err = h.service.ByKind(c.Request.Context(), model.ItemKind(q.Kind))
	} else {
		items, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondFound(c, item != nil, item, "item")
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateBillableItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	outcome, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "item")
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "item")
}
