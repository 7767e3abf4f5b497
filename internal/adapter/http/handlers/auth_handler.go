package handlers

import (
	"errors"
	"net/http"

	request "taller_flota/internal/adapter/http/dto/request"
	response "taller_flota/internal/adapter/http/dto/response"
	"taller_flota/internal/adapter/http/middleware"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidLoginPayload = pkg.NewDomainErrorSimple("INVALID_LOGIN_INPUT", "Debe ingresar usuario y contraseña.", http.StatusBadRequest)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// Login handles POST autenticacion/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(errInvalidLoginPayload.HTTPStatus, errInvalidLoginPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.LoginResponse{
		Success:   true,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Employee:  response.FromEmployee(res.Employee),
	})
}

// Logout handles POST autenticacion/logout; the route sits behind RequireAuth.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, _ := middleware.Session(c)
	if err := h.usecase.Logout(c.Request.Context(), claims); err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Sesión cerrada."})
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Usuario o contraseña incorrectos.", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInactiveEmployee):
		return pkg.NewDomainErrorSimple("INACTIVE_EMPLOYEE", "El usuario está inactivo.", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidToken):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Debe iniciar sesión.", http.StatusUnauthorized)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
