package middleware

import (
	"strings"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	"github.com/gin-gonic/gin"
)

const actorContextKey = "backoffice.actor"

// TokenVerifier extracts the user id from a bearer token
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate resolves the bearer token to an active directory user and stores it on the context
func Authenticate(tokens TokenVerifier, users usecase.UserUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			AbortWithError(c, errs.ErrUnauthorized)
			return
		}

		userID, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.Debug("Bearer token rejected", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			AbortWithError(c, err)
			return
		}

		actor, err := users.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Could not resolve actor", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
			AbortWithError(c, err)
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// PermissionChecker answers whether a role holds a permission
type PermissionChecker interface {
	HasPermission(role entity.Role, p permission.Permission) bool
}

// RequirePermission refuses the request unless the actor's role holds p
func RequirePermission(checker PermissionChecker, p permission.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		if actor == nil {
			AbortWithError(c, errs.ErrUnauthorized)
			return
		}
		if !checker.HasPermission(actor.Role, p) {
			AbortWithError(c, errs.NewAuthorizationError(actor.ID, string(actor.Role), string(p), "missing permission"))
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated user, or nil on unauthenticated routes
func Actor(c *gin.Context) *entity.User {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*entity.User)
	return actor
}

// SetActor stores actor on the context
func SetActor(c *gin.Context, actor *entity.User) {
	c.Set(actorContextKey, actor)
}

func actorID(c *gin.Context) string {
	if actor := Actor(c); actor != nil {
		return actor.ID
	}
	return ""
}
