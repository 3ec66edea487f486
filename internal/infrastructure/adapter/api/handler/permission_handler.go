package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// PermissionHandler exposes the role permission table to clients
type PermissionHandler struct {
	table  *permission.Table
	logger coreport.Logger
}

// NewPermissionHandler creates a new permission handler instance
func NewPermissionHandler(table *permission.Table, logger coreport.Logger) *PermissionHandler {
	return &PermissionHandler{table: table, logger: logger}
}

// Mine handles GET /api/me/permissions
func (h *PermissionHandler) Mine(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		respondError(c, h.logger, "my permissions", errs.ErrUnauthorized)
		return
	}

	perms := h.table.Permissions(actor.Role)
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, string(p))
	}
	c.JSON(http.StatusOK, dto.PermissionsResponse{
		Role:        string(actor.Role),
		Permissions: names,
	})
}

// Check handles GET /api/permissions/check.
// The permission is given as a token (?permission=create_expenses), as resource:action
// (?permission=expenses:create) or as a route path (?path=/expenses). ?role= checks another role.
func (h *PermissionHandler) Check(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		respondError(c, h.logger, "check permission", errs.ErrUnauthorized)
		return
	}

	p := requestedPermission(c)
	if p == "" {
		respondError(c, h.logger, "check permission",
			fmt.Errorf("%w: a permission or path query parameter is required", errs.ErrValidation))
		return
	}

	role := actor.Role
	if r := strings.TrimSpace(c.Query("role")); r != "" {
		role = entity.Role(r)
	}

	c.JSON(http.StatusOK, dto.PermissionCheckResponse{
		Role:       string(role),
		Permission: string(p),
		Allowed:    h.table.HasPermission(role, p),
	})
}

func requestedPermission(c *gin.Context) permission.Permission {
	if path := c.Query("path"); path != "" {
		return permission.ViewPermissionForPath(path)
	}
	raw := strings.TrimSpace(c.Query("permission"))
	if strings.Contains(raw, ":") {
		return permission.FromResourceAction(raw)
	}
	return permission.Permission(raw)
}
