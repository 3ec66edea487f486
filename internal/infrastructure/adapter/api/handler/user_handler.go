package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user directory HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userUseCase usecase.UserUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "create user", invalidRequest(err))
		return
	}

	user, err := h.userUseCase.CreateUser(c.Request.Context(), middleware.Actor(c), usecase.CreateUserRequest{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Agency: req.Agency,
	})
	if err != nil {
		respondError(c, h.logger, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// List handles GET /api/users, optionally filtered with ?role=
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUseCase.ListUsers(c.Request.Context(), middleware.Actor(c), c.Query("role"))
	if err != nil {
		respondError(c, h.logger, "list users", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUsers(users))
}
