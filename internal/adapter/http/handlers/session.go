package handlers

import (
	"taller_flota/internal/adapter/http/middleware"
	"taller_flota/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

// actor rebuilds the calling employee from the session claims; zero when the
// route is not behind RequireAuth.
func actor(c *gin.Context) entities.Employee {
	claims, ok := middleware.Session(c)
	if !ok {
		return entities.Employee{}
	}
	return claims.Employee()
}
