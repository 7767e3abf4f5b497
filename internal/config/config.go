// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type Config struct {
	Env        string `env:"APP_ENV" env-default:"local"`
	HTTPServer HTTPServer
	Storage    Storage
	DynamoDB   DynamoDB
	Auth       Auth
	Redis      Redis
	CORS       CORS
	Bootstrap  Bootstrap
}

type HTTPServer struct {
	Address      string        `env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Storage struct {
	Driver       string `env:"STORAGE_DRIVER" env-default:"dynamodb"`
	UploadsDir   string `env:"UPLOADS_DIR" env-default:"./uploads"`
	FirstOrderID int64  `env:"FIRST_ORDER_ID" env-default:"1"`
}

type DynamoDB struct {
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"local"`
	CreateTables    bool   `env:"DYNAMODB_CREATE_TABLES" env-default:"false"`

	WorkOrdersTable string `env:"WORK_ORDERS_TABLE" env-default:"work_orders"`
	VehiclesTable   string `env:"VEHICLES_TABLE" env-default:"vehicles"`
	EmployeesTable  string `env:"EMPLOYEES_TABLE" env-default:"employees"`
	WorkshopsTable  string `env:"WORKSHOPS_TABLE" env-default:"workshops"`
	DocumentsTable  string `env:"DOCUMENTS_TABLE" env-default:"documents"`
	CountersTable   string `env:"COUNTERS_TABLE" env-default:"counters"`

	ReservationsTable string `env:"RESERVATIONS_TABLE" env-default:"reservations"`
	PausesTable       string `env:"PAUSES_TABLE" env-default:"pauses"`
	AccessTable       string `env:"ACCESS_TABLE" env-default:"access_control"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET" env-default:"change-me"`
	TokenTTL  time.Duration `env:"JWT_TTL" env-default:"12h"`
}

// Redis is optional; an empty Addr keeps revoked tokens in process memory.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:8000,http://127.0.0.1:8000"`
}

// Bootstrap seeds an administrator on an empty store so the first login is
// possible.
type Bootstrap struct {
	AdminRUT      string `env:"BOOTSTRAP_ADMIN_RUT"`
	AdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	Workshops     string `env:"BOOTSTRAP_WORKSHOPS" env-default:"1:Taller Central,2:Taller Norte,3:Taller Sur"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Storage.Driver != StorageDynamoDB && cfg.Storage.Driver != StorageMemory {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
