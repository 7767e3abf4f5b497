package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Client configures cmd/tallerctl. Host mirrors the browser hostname check:
// localhost talks to LocalAPIURL, anything else to RemoteAPIURL.
type Client struct {
	Host         string `env:"TALLER_HOST" env-default:"localhost"`
	LocalAPIURL  string `env:"LOCAL_API_URL" env-default:"http://localhost:8080/api/"`
	RemoteAPIURL string `env:"REMOTE_API_URL" env-default:"https://taller.example.cl/api/"`
	SessionFile  string `env:"TALLER_SESSION_FILE" env-default:".tallerctl-session.json"`
}

func LoadClient() (*Client, error) {
	var cfg Client
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}
	return &cfg, nil
}
