package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/account"
)

type Handler struct {
	service account.AccountService
}

func NewHandler(service account.AccountService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PATCH("/:id", h.UpdateAccount)
		accounts.POST("/:id/disable", h.DisableAccount)
	}
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req model.Account
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(req.Public()))
}

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	public := make([]model.PublicAccount, 0, len(accounts))
	for _, a := range accounts {
		public = append(public, a.Public())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(public))
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	acc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if acc == nil {
		handler.RespondFound(c, false, nil, "account")
		return
	}
	handler.RespondFound(c, true, acc.Public(), "account")
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	outcome, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "account")
}

func (h *Handler) DisableAccount(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	outcome, err := h.service.Disable(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	handler.RespondOutcome(c, outcome, "account")
}
