package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/account"
	apperrors "github.com/jwalitptl/clinic-admin/pkg/errors"
)

type Handler struct {
	service account.AccountService
}

func NewHandler(service account.AccountService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

// Login checks the credentials and returns the account. No token is issued.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	acc, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if acc == nil {
		_ = c.Error(apperrors.Unauthorized(nil))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(acc.Public()))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Deauthenticate(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
