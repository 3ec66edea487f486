package handler

import (
	"net/http"
	"testing"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/dto"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	ucmocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var admin = &entity.User{ID: "u-admin", Name: "Root", Role: entity.RoleSuperAdmin, Active: true}

func setupUserRouter(t *testing.T, actor *entity.User) (*gin.Engine, *ucmocks.MockUserUseCase) {
	uc := ucmocks.NewMockUserUseCase(t)
	h := NewUserHandler(uc, coremocks.NewMockLogger(t).AllowAll())

	router := newRouter(actor)
	router.POST("/api/users", h.Create)
	router.GET("/api/users", h.List)
	router.GET("/api/users/:id", h.Get)
	return router, uc
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		router, uc := setupUserRouter(t, admin)
		req := usecase.CreateUserRequest{Name: "Ines Kone", Email: "ines@backoffice.local", Role: "executor", Agency: "Abidjan"}
		uc.On("CreateUser", mock.Anything, admin, req).Return(executor, nil).Once()

		w := doRequest(t, router, http.MethodPost, "/api/users", map[string]any{
			"name": "Ines Kone", "email": "ines@backoffice.local", "role": "executor", "agency": "Abidjan",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decode[dto.UserResponse](t, w)
		assert.Equal(t, executor.ID, resp.ID)
		assert.Equal(t, "executor", resp.Role)
		assert.True(t, resp.Active)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		router, uc := setupUserRouter(t, admin)
		uc.On("CreateUser", mock.Anything, admin, mock.Anything).Return(nil, errs.ErrDuplicateUser).Once()

		w := doRequest(t, router, http.MethodPost, "/api/users", map[string]any{
			"name": "Ines Kone", "email": "ines@backoffice.local", "role": "executor",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, errs.CodeDuplicate, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("Missing role", func(t *testing.T) {
		router, _ := setupUserRouter(t, admin)

		w := doRequest(t, router, http.MethodPost, "/api/users", map[string]any{"name": "X", "email": "x@y.io"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	router, uc := setupUserRouter(t, admin)
	uc.On("ListUsers", mock.Anything, admin, "executor").Return([]*entity.User{executor}, nil).Once()

	w := doRequest(t, router, http.MethodGet, "/api/users?role=executor", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]dto.UserResponse](t, w)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "Ines Kone", resp[0].Name)
	}
}

func TestUserHandler_Get(t *testing.T) {
	router, uc := setupUserRouter(t, admin)
	uc.On("GetUser", mock.Anything, admin, "nobody").Return(nil, errs.ErrUserNotFound).Once()

	w := doRequest(t, router, http.MethodGet, "/api/users/nobody", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
