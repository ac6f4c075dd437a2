package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/model"
	apperrors "github.com/jwalitptl/clinic-admin/pkg/errors"
)

const ContextAccount = "account"

// Authenticator checks credentials against the account store.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.Account, error)
}

type AuthMiddleware struct {
	accounts Authenticator
}

func NewAuthMiddleware(accounts Authenticator) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// BasicAuth checks HTTP Basic credentials on every request. The username is
// the account email. There are no sessions or tokens.
func (m *AuthMiddleware) BasicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="clinic"`)
			_ = c.Error(apperrors.Unauthorized(nil))
			c.Abort()
			return
		}

		account, err := m.accounts.Authenticate(c.Request.Context(), email, password)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			c.Abort()
			return
		}
		if account == nil {
			c.Header("WWW-Authenticate", `Basic realm="clinic"`)
			_ = c.Error(apperrors.Unauthorized(nil))
			c.Abort()
			return
		}

		c.Set(ContextAccount, account.Public())
		c.Next()
	}
}
