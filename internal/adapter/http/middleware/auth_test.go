package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taller_flota/internal/adapter/http/handlers/mocks"
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func protectedRouter(auth usecase.IAuthUseCase, roles ...entities.Role) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()), RequestLogger(zap.NewNop()))
	handlers := []gin.HandlerFunc{RequireAuth(auth)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := Session(c)
		c.JSON(http.StatusOK, gin.H{"rut": claims.RUT})
	})
	r.GET("/protected", handlers...)
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		w := call(protectedRouter(mocks.NewMockIAuthUseCase(ctrl)), "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("non bearer header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		w := call(protectedRouter(mocks.NewMockIAuthUseCase(ctrl)), "Basic abc")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("auth errors", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{usecase.ErrInvalidToken, http.StatusUnauthorized},
			{usecase.ErrTokenRevoked, http.StatusUnauthorized},
			{errors.New("redis down"), http.StatusInternalServerError},
		}
		for _, tt := range cases {
			t.Run(tt.err.Error(), func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				auth := mocks.NewMockIAuthUseCase(ctrl)
				auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.SessionClaims{}, tt.err)

				w := call(protectedRouter(auth), "Bearer tok")
				if w.Code != tt.code {
					t.Fatalf("expected %d, got %d", tt.code, w.Code)
				}
			})
		}
	})

	t.Run("valid token stores session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.SessionClaims{RUT: "1-9", Role: entities.RoleSupervisor}, nil)

		w := call(protectedRouter(auth), "bearer tok")
		if w.Code != http.StatusOK || w.Body.String() != `{"rut":"1-9"}` {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		role entities.Role
		code int
	}{
		{"allowed", entities.RoleSupervisor, http.StatusOK},
		{"forbidden", entities.RoleChofer, http.StatusForbidden},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			auth := mocks.NewMockIAuthUseCase(ctrl)
			auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(entities.SessionClaims{RUT: "1-9", Role: tt.role}, nil)

			w := call(protectedRouter(auth, entities.RoleSupervisor, entities.RoleAdmin), "Bearer tok")
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, w.Code)
			}
		})
	}

	t.Run("without session", func(t *testing.T) {
		r := gin.New()
		r.GET("/protected", RequireRoles(entities.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
		if w := call(r, ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/protected", func(c *gin.Context) { panic("boom") })

	w := call(r, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
