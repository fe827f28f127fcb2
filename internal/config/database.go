package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database describes the postgres connection, parsed from POSTGRES_* env
// variables. The password may come from a file instead (docker secrets).
type Database struct {
	Username     string `env:"POSTGRES_USER,required"`
	Password     string `env:"POSTGRES_PASSWORD"`
	PasswordFile string `env:"POSTGRES_PASSWORD_FILE"`
	Host         string `env:"POSTGRES_HOST,required"`
	Port         uint16 `env:"POSTGRES_PORT" envDefault:"5432"`
	DBName       string `env:"POSTGRES_DB,required"`
	SSLMode      string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func NewDatabase() (*Database, error) {
	var cfg Database
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.Password == "" {
		if cfg.PasswordFile == "" {
			return nil, fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
		}
		data, err := os.ReadFile(cfg.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read from password file: %w", err)
		}
		cfg.Password = strings.TrimSpace(string(data))
	}
	return &cfg, nil
}

func (c Database) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// DbURL resolves the database url for the migrator, preferring an explicit
// DATABASE_URL over the POSTGRES_* pieces.
func DbURL() (string, error) {
	dbURL, ok := os.LookupEnv("DATABASE_URL")
	if ok {
		return dbURL, nil
	}

	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, ok := os.LookupEnv("DATABASE_URL")
	if ok {
		return pgxpool.ParseConfig(dbURL)
	}

	cfg, err := NewDatabase()
	if err != nil {
		return nil, fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return pgxpool.ParseConfig(cfg.DSN())
}
