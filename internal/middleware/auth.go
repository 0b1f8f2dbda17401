package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Bulletin/internal/auth"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/rs/zerolog/log"
)

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/api/v1/auth/login"

const (
	userKey   = "user"
	claimsKey = "claims"
)

// UserLoader resolves the account behind a verified token.
type UserLoader interface {
	CurrentUser(ctx context.Context, id uint) (*model.User, error)
}

// Authenticate resolves an optional Bearer token into the acting user.
// Requests without an Authorization header pass through anonymously; a
// header that does not verify is rejected.
func Authenticate(issuer *auth.TokenIssuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			unauthorized(c, "invalid Authorization header")
			return
		}

		claims, err := issuer.Parse(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			log.Debug().Err(err).Msg("Rejected access token")
			unauthorized(c, "invalid or expired token")
			return
		}
		id, _ := claims.UserID()
		user, err := users.CurrentUser(c.Request.Context(), id)
		if err != nil {
			log.Warn().Err(err).Uint("userID", id).Msg("Token subject could not be loaded")
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			unauthorized(c, errorz.ErrUnauthenticated.Error())
			return
		}
		c.Next()
	}
}

// CurrentUser returns the acting user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func CurrentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: msg, Redirect: LoginPath})
}
