package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Postgres PostgresConfig
}

type PostgresConfig struct {
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     int    `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,     default=userdb"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

// DSN renders the settings as a lib/pq key/value connection string.
func (p PostgresConfig) DSN() string {
	parts := []string{
		"host=" + quote(p.Host),
		fmt.Sprintf("port=%d", p.Port),
		"user=" + quote(p.User),
		"dbname=" + quote(p.Name),
		"sslmode=" + quote(p.SSLMode),
	}
	if p.Password != "" {
		parts = append(parts, "password="+quote(p.Password))
	}
	return strings.Join(parts, " ")
}

// IsDevelopment reports whether human-readable console logs should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// quote escapes a DSN value per lib/pq rules when it contains spaces or quotes.
func quote(v string) string {
	if v == "" || strings.ContainsAny(v, ` '\`) {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `'`, `\'`)
		return "'" + v + "'"
	}
	return v
}
