package postgres

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func ConfigFromEnv() Config {
	return Config{
		Host:            getenv("DB_HOST", "localhost"),
		Port:            getenv("DB_PORT", "5432"),
		User:            getenv("DB_USER", "postgres"),
		Password:        os.Getenv("DB_PASSWORD"),
		Name:            getenv("DB_NAME", "servetrack"),
		SSLMode:         getenv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getenvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
	}
}

func (c Config) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s", c.Host, c.Port, c.User, c.Name, c.SSLMode)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

func New() (*sqlx.DB, error) {
	cfg := ConfigFromEnv()

	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Migrate creates the tables the service needs. Every statement is idempotent.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
