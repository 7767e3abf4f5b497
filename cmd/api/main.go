package main

import (
	_ "taller_flota/docs"
	"taller_flota/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Taller Flota API
// @version         1.0
// @description     Work orders, intake scheduling, vehicle records, documents and reports for the fleet workshops.

// @contact.name   Soporte Taller
// @contact.email  soporte@taller.example.cl

// @host localhost:8080

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
