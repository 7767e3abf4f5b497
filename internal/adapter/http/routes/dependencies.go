package routes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"taller_flota/internal/adapter/persistence/memory"
	"taller_flota/internal/adapter/persistence/repository"
	"taller_flota/internal/config"
	"taller_flota/internal/domain/entities"
	"taller_flota/internal/infrastructure/auth"
	"taller_flota/internal/infrastructure/cache"
	"taller_flota/internal/infrastructure/database"
	"taller_flota/internal/infrastructure/report"
	"taller_flota/internal/infrastructure/storage"
	"taller_flota/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Dependencies holds the adapters the router is wired with.
type Dependencies struct {
	Logger      *zap.Logger
	WorkOrders  interfaces.IWorkOrderRepository
	Vehicles    interfaces.IVehicleRepository
	Employees   interfaces.IEmployeeRepository
	Workshops   interfaces.IWorkshopRepository
	Documents   interfaces.IDocumentRepository
	Pauses      interfaces.IPauseRepository
	Access      interfaces.IAccessRepository
	FileStorage interfaces.IFileStorage
	Tokens      interfaces.ITokenService
	Revocations interfaces.IRevocationStore
	Hasher      interfaces.IPasswordHasher
	Exporter    interfaces.IReportExporter
	UploadsDir  string
}

func BuildDependencies(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*Dependencies, error) {
	files, err := storage.NewLocalFileStorage(cfg.Storage.UploadsDir)
	if err != nil {
		return nil, err
	}

	d := &Dependencies{
		Logger:      zl,
		FileStorage: files,
		Tokens:      auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Hasher:      auth.NewBcryptHasher(0),
		Exporter:    report.NewXLSXExporter(),
		UploadsDir:  cfg.Storage.UploadsDir,
	}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		NewMemoryStores(d, cfg.Storage.FirstOrderID)
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		if cfg.DynamoDB.CreateTables {
			if err := database.EnsureTables(ctx, ddb, cfg.DynamoDB); err != nil {
				return nil, err
			}
		}
		counters := repository.NewCounterDynamoRepository(ddb, cfg.DynamoDB.CountersTable)
		d.WorkOrders = repository.NewWorkOrderDynamoRepository(ddb, cfg.DynamoDB.WorkOrdersTable, cfg.DynamoDB.ReservationsTable, counters)
		d.Vehicles = repository.NewVehicleDynamoRepository(ddb, cfg.DynamoDB.VehiclesTable)
		d.Employees = repository.NewEmployeeDynamoRepository(ddb, cfg.DynamoDB.EmployeesTable)
		d.Workshops = repository.NewWorkshopDynamoRepository(ddb, cfg.DynamoDB.WorkshopsTable)
		d.Documents = repository.NewDocumentDynamoRepository(ddb, cfg.DynamoDB.DocumentsTable)
		d.Pauses = repository.NewPauseDynamoRepository(ddb, cfg.DynamoDB.PausesTable, cfg.DynamoDB.ReservationsTable)
		d.Access = repository.NewAccessDynamoRepository(ddb, cfg.DynamoDB.AccessTable, cfg.DynamoDB.ReservationsTable)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		d.Revocations = cache.NewRedisRevocationStore(client)
	} else {
		zl.Warn("[startup] REDIS_ADDR not set, revoked tokens are kept in memory")
		d.Revocations = cache.NewMemoryRevocationStore()
	}
	return d, nil
}

// NewMemoryStores fills d with in-process repositories.
func NewMemoryStores(d *Dependencies, firstOrderID int64) {
	d.WorkOrders = memory.NewWorkOrderRepository(firstOrderID)
	d.Vehicles = memory.NewVehicleRepository()
	d.Employees = memory.NewEmployeeRepository()
	d.Workshops = memory.NewWorkshopRepository()
	d.Documents = memory.NewDocumentRepository()
	d.Pauses = memory.NewPauseRepository()
	d.Access = memory.NewAccessRepository()
}

// Bootstrap creates the configured workshops and the first administrator
// when they are missing.
func Bootstrap(ctx context.Context, cfg config.Bootstrap, d *Dependencies) error {
	workshops, err := ParseWorkshops(cfg.Workshops)
	if err != nil {
		return err
	}
	for _, w := range workshops {
		existing, err := d.Workshops.GetByID(ctx, w.ID)
		if err != nil {
			return err
		}
		if existing.ID != 0 {
			continue
		}
		if _, err := d.Workshops.Create(ctx, w); err != nil {
			return fmt.Errorf("seed workshop %d: %w", w.ID, err)
		}
		d.Logger.Info("[bootstrap] workshop created", zap.Int64("id", w.ID), zap.String("name", w.Name))
	}

	if cfg.AdminRUT == "" || cfg.AdminPassword == "" {
		return nil
	}
	existing, err := d.Employees.GetByRUT(ctx, cfg.AdminRUT)
	if err != nil {
		return err
	}
	if existing.RUT != "" {
		return nil
	}
	hash, err := d.Hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := entities.Employee{
		RUT:          cfg.AdminRUT,
		Name:         "Administrador",
		Role:         entities.RoleAdmin,
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Active:       true,
	}
	if len(workshops) > 0 {
		admin.WorkshopID = workshops[0].ID
	}
	if _, err := d.Employees.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	d.Logger.Info("[bootstrap] admin created", zap.String("username", cfg.AdminUsername))
	return nil
}

// ParseWorkshops reads "1:Taller Central,2:Taller Norte".
func ParseWorkshops(raw string) ([]entities.Workshop, error) {
	var out []entities.Workshop
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idStr, name, ok := strings.Cut(part, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid workshop entry %q", part)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid workshop id in %q", part)
		}
		out = append(out, entities.Workshop{ID: id, Name: strings.TrimSpace(name)})
	}
	return out, nil
}
