package routes

import (
	"taller_flota/internal/adapter/http/handlers"
	"taller_flota/internal/adapter/http/middleware"
	"taller_flota/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathStatus  = "/estado"
	PathOrders  = "/ordenes"
	PathIntake  = "/ingresos"
	PathAgenda  = "/agenda"
	PathFicha   = "/ficha"
	PathDocs    = "/documentos"
	PathReports = "/reportes/api"
	PathGate    = "/control-acceso"
)

func addWorkshopRoutes(rg *gin.RouterGroup, orders *handlers.WorkOrderHandler, intake *handlers.IntakeHandler, agenda *handlers.AgendaHandler, pauses *handlers.PauseHandler) {
	status := rg.Group(PathStatus, middleware.RequireRoles(entities.RoleMecanico, entities.RoleSupervisor, entities.RoleAdmin))
	{
		status.POST("/cambiar", orders.ChangeStatus)
	}

	supervisor := middleware.RequireRoles(entities.RoleSupervisor, entities.RoleAdmin)
	ot := rg.Group(PathOrders)
	{
		ot.POST("/:id/asignar", supervisor, orders.Assign)
		ot.GET("/pendientes", supervisor, orders.ListPending)
		ot.GET("/mecanico", middleware.RequireRoles(entities.RoleMecanico), orders.ListForMechanic)
	}

	pausas := rg.Group(PathOrders+"/:id/pausas", middleware.RequireRoles(entities.RoleMecanico, entities.RoleSupervisor, entities.RoleAdmin))
	{
		pausas.GET("", pauses.List)
		pausas.POST("/start", pauses.Start)
		pausas.POST("/stop", pauses.Stop)
	}

	ingresos := rg.Group(PathIntake, middleware.RequireRoles(entities.RoleChofer, entities.RoleSupervisor, entities.RoleGuardia, entities.RoleAdmin))
	{
		ingresos.POST("/create", intake.Create)
	}

	rg.GET(PathAgenda+"/slots", agenda.Slots)
}

func addVehicleRoutes(rg *gin.RouterGroup, vehicles *handlers.VehicleHandler, docs *handlers.DocumentHandler) {
	ficha := rg.Group(PathFicha, middleware.RequireRoles(entities.RoleSupervisor, entities.RoleMecanico, entities.RoleAdmin))
	{
		ficha.GET("", vehicles.Ficha)
		ficha.GET("/ots", vehicles.History)
	}

	documentos := rg.Group(PathDocs)
	{
		documentos.GET("", docs.List)
		documentos.POST("/upload", docs.Upload)
	}
}

func addGateRoutes(rg *gin.RouterGroup, gate *handlers.GateHandler) {
	g := rg.Group(PathGate, middleware.RequireRoles(entities.RoleGuardia, entities.RoleSupervisor, entities.RoleAdmin))
	{
		g.GET("", gate.Lookup)
		g.GET("/historial", gate.History)
		g.POST("/entrada", gate.Entry)
		g.POST("/salida", gate.Exit)
	}
}

func addReportRoutes(rg *gin.RouterGroup, reports *handlers.ReportHandler) {
	r := rg.Group(PathReports, middleware.RequireRoles(entities.RoleSupervisor, entities.RoleAdministrativo, entities.RoleAdmin))
	{
		r.GET("/summary", reports.Summary)
		r.GET("/ots", reports.Orders)
		r.GET("/ots/export", reports.ExportOrders)
		r.GET("/resumen", reports.Global)
		r.GET("/talleres", reports.Workshops)
		r.GET("/tiempos", reports.AverageTimes)
	}
}
