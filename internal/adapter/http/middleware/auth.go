package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase"
	"taller_flota/pkg"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

var (
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Debe iniciar sesión.", http.StatusUnauthorized)
	errSessionExpired  = pkg.NewDomainErrorSimple("SESSION_EXPIRED", "La sesión expiró. Inicie sesión nuevamente.", http.StatusUnauthorized)
	errForbidden       = pkg.NewDomainErrorSimple("FORBIDDEN", "No tiene permisos para esta acción.", http.StatusForbidden)
)

// RequireAuth validates the bearer token and stores the session claims in
// the gin context.
func RequireAuth(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			appErr := errUnauthenticated
			if errors.Is(err, usecase.ErrTokenRevoked) {
				appErr = errSessionExpired
			} else if !errors.Is(err, usecase.ErrInvalidToken) {
				appErr = pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Set(sessionKey, claims)
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Session(c)
		if !ok {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		if !claims.HasRole(roles...) {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

// Session returns the claims stored by RequireAuth.
func Session(c *gin.Context) (entities.SessionClaims, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return entities.SessionClaims{}, false
	}
	claims, ok := v.(entities.SessionClaims)
	return claims, ok
}

// SetSession is used by handler tests that bypass RequireAuth.
func SetSession(c *gin.Context, claims entities.SessionClaims) {
	c.Set(sessionKey, claims)
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
