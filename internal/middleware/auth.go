package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/pkg/auth"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

const ContextActor = "actor"

type AuthMiddleware struct {
	jwtService auth.JWTService
	users      repository.UserRepository
}

func NewAuthMiddleware(jwtService auth.JWTService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate verifies the bearer token and attaches the staff identity
// to the request. The role is read from the user record, not the token,
// so role changes take effect without waiting for token expiry.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized(err))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized(err))
			c.Abort()
			return
		}

		user, err := m.users.Get(c.Request.Context(), userID)
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized(err))
			c.Abort()
			return
		}
		if user.Status != model.UserStatusActive {
			httputil.RespondWithError(c, errors.Forbidden(nil))
			c.Abort()
			return
		}

		c.Set(ContextActor, authz.Actor{
			ID:         user.ID,
			Role:       authz.Role(user.Role),
			Department: user.Department,
			Status:     user.Status,
		})
		c.Next()
	}
}

// ActorFrom returns the authenticated actor stored by Authenticate.
func ActorFrom(c *gin.Context) (authz.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}
