package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coremocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/core"
	ucmocks "github.com/amirhossein-jamali/remittance-backoffice/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: bad token", errs.ErrUnauthorized)
}

type checkerFunc func(role entity.Role, p permission.Permission) bool

func (f checkerFunc) HasPermission(role entity.Role, p permission.Permission) bool { return f(role, p) }

var auditor = &entity.User{ID: "u-auditor", Name: "Paul Mbarga", Role: entity.RoleAuditor, Active: true}

func setupAuthRouter(t *testing.T, users *ucmocks.MockUserUseCase) *gin.Engine {
	router := gin.New()
	verifier := stubVerifier{"good-token": auditor.ID, "ghost-token": "u-ghost"}
	table := permission.NewTable()

	router.Use(Authenticate(verifier, users, coremocks.NewMockLogger(t).AllowAll()))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, Actor(c).Name)
	})
	router.POST("/validate", RequirePermission(table, permission.ValidateTransactions), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.POST("/approve", RequirePermission(table, permission.ApproveDeleteTransactions), func(c *gin.Context) {
		t.Error("handler must not run without the permission")
	})
	return router
}

func request(router http.Handler, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	t.Run("Resolves the actor", func(t *testing.T) {
		users := ucmocks.NewMockUserUseCase(t)
		users.On("ResolveActor", mock.Anything, auditor.ID).Return(auditor, nil).Once()

		w := request(setupAuthRouter(t, users), http.MethodGet, "/whoami", "Bearer good-token")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Paul Mbarga", w.Body.String())
	})

	t.Run("Scheme is case insensitive", func(t *testing.T) {
		users := ucmocks.NewMockUserUseCase(t)
		users.On("ResolveActor", mock.Anything, auditor.ID).Return(auditor, nil).Once()

		w := request(setupAuthRouter(t, users), http.MethodGet, "/whoami", "bearer good-token")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	for _, header := range []string{"", "good-token", "Basic good-token", "Bearer ", "Bearer forged"} {
		t.Run(fmt.Sprintf("Rejects %q", header), func(t *testing.T) {
			w := request(setupAuthRouter(t, ucmocks.NewMockUserUseCase(t)), http.MethodGet, "/whoami", header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), fmt.Sprint(errs.CodeUnauthorized))
		})
	}

	t.Run("Unknown or inactive user", func(t *testing.T) {
		users := ucmocks.NewMockUserUseCase(t)
		users.On("ResolveActor", mock.Anything, "u-ghost").
			Return(nil, fmt.Errorf("%w: unknown user u-ghost", errs.ErrUnauthorized)).Once()

		w := request(setupAuthRouter(t, users), http.MethodGet, "/whoami", "Bearer ghost-token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Directory unavailable", func(t *testing.T) {
		users := ucmocks.NewMockUserUseCase(t)
		users.On("ResolveActor", mock.Anything, auditor.ID).
			Return(nil, errors.Join(errs.ErrDatabaseConnection, errors.New("timeout"))).Once()

		w := request(setupAuthRouter(t, users), http.MethodGet, "/whoami", "Bearer good-token")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	t.Run("Granted", func(t *testing.T) {
		users := ucmocks.NewMockUserUseCase(t)
		users.On("ResolveActor", mock.Anything, auditor.ID).Return(auditor, nil).Once()

		w := request(setupAuthRouter(t, users), http.MethodPost, "/validate", "Bearer good-token")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Refused before the handler runs", func(t *testing.T) {
		users := ucmocks.NewMockUserUseCase(t)
		users.On("ResolveActor", mock.Anything, auditor.ID).Return(auditor, nil).Once()

		w := request(setupAuthRouter(t, users), http.MethodPost, "/approve", "Bearer good-token")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "approve_delete_transactions")
	})

	t.Run("Uses the given checker", func(t *testing.T) {
		var asked []permission.Permission
		checker := checkerFunc(func(role entity.Role, p permission.Permission) bool {
			asked = append(asked, p)
			return role == entity.RoleExecutor
		})
		router := gin.New()
		router.Use(func(c *gin.Context) {
			SetActor(c, &entity.User{ID: "u-exec", Role: entity.RoleExecutor})
		})
		router.POST("/execute", RequirePermission(checker, permission.ExecuteTransactions), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := request(router, http.MethodPost, "/execute", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []permission.Permission{permission.ExecuteTransactions}, asked)
	})

	t.Run("No actor on the context", func(t *testing.T) {
		router := gin.New()
		router.GET("/open", RequirePermission(permission.NewTable(), permission.ViewDashboard), func(c *gin.Context) {
			t.Error("handler must not run without an actor")
		})

		w := request(router, http.MethodGet, "/open", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
