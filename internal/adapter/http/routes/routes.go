package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "taller_flota/docs" // registers the swagger spec
	"taller_flota/internal/adapter/http/handlers"
	"taller_flota/internal/adapter/http/middleware"
	"taller_flota/internal/config"
	"taller_flota/internal/infrastructure/logger"
	"taller_flota/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	PathAPI     = "/api"
	PathMedia   = "/media"
	mediaPrefix = PathMedia + "/"
)

// Run loads the configuration, wires the dependencies and serves until
// SIGINT/SIGTERM.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := BuildDependencies(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("[startup] dependencies", zap.Error(err))
	}
	if err := Bootstrap(ctx, cfg.Bootstrap, deps); err != nil {
		zl.Fatal("[startup] bootstrap", zap.Error(err))
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      corsHandler.Handler(NewRouter(deps)),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		zl.Info("[startup] listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to startup the application", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("[shutdown] server", zap.Error(err))
	}
	zl.Info("[shutdown] done")
}

// NewRouter builds the gin engine over already wired dependencies.
func NewRouter(d *Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, d.Logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if d.UploadsDir != "" {
		router.Static(PathMedia, d.UploadsDir)
	}

	getRoutes(router, d)
	return router
}

func getRoutes(router *gin.Engine, d *Dependencies) {
	workOrderUseCase := usecase.NewWorkOrderUseCase(d.WorkOrders, d.Vehicles, d.Employees, d.Logger)
	intakeUseCase := usecase.NewIntakeUseCase(d.WorkOrders, d.Vehicles, d.Employees, d.Workshops, d.Hasher, d.Logger)
	agendaUseCase := usecase.NewAgendaUseCase(d.WorkOrders, d.Workshops)
	vehicleUseCase := usecase.NewVehicleUseCase(d.Vehicles, d.WorkOrders)
	documentUseCase := usecase.NewDocumentUseCase(d.Documents, d.WorkOrders, d.FileStorage, d.Logger)
	authUseCase := usecase.NewAuthUseCase(d.Employees, d.Tokens, d.Revocations, d.Hasher, d.Logger)
	reportUseCase := usecase.NewReportUseCase(d.WorkOrders, d.Vehicles, d.Employees, d.Workshops, d.Exporter, d.Logger)
	pauseUseCase := usecase.NewPauseUseCase(d.Pauses, d.WorkOrders, d.Logger)
	gateUseCase := usecase.NewGateUseCase(d.Access, d.Vehicles, d.WorkOrders, d.Employees, d.Logger)

	workOrderHandler := handlers.NewWorkOrderHandler(workOrderUseCase)
	intakeHandler := handlers.NewIntakeHandler(intakeUseCase)
	agendaHandler := handlers.NewAgendaHandler(agendaUseCase)
	vehicleHandler := handlers.NewVehicleHandler(vehicleUseCase)
	documentHandler := handlers.NewDocumentHandler(documentUseCase, mediaPrefix)
	authHandler := handlers.NewAuthHandler(authUseCase)
	reportHandler := handlers.NewReportHandler(reportUseCase)
	pauseHandler := handlers.NewPauseHandler(pauseUseCase)
	gateHandler := handlers.NewGateHandler(gateUseCase)

	api := router.Group(PathAPI)

	// Rutas públicas
	addPingRoutes(api)
	api.POST("/autenticacion/login", authHandler.Login)

	private := api.Group("")
	private.Use(middleware.RequireAuth(authUseCase))
	private.POST("/autenticacion/logout", authHandler.Logout)

	addWorkshopRoutes(private, workOrderHandler, intakeHandler, agendaHandler, pauseHandler)
	addGateRoutes(private, gateHandler)
	addVehicleRoutes(private, vehicleHandler, documentHandler)
	addReportRoutes(private, reportHandler)
}

func setMiddlewares(router *gin.Engine, zl *zap.Logger) {
	router.Use(middleware.RequestLogger(zl))
	router.Use(middleware.Recovery(zl))
}
