package postgres

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "servetrack")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "5")

	cfg := ConfigFromEnv()
	if cfg.Name != "servetrack" || cfg.MaxOpenConns != 25 || cfg.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("config = %+v", cfg)
	}

	want := "host=db.internal port=6543 user=servetrack dbname=servetrack sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	cfg.Password = "s3cret"
	if got := cfg.DSN(); got != want+" password=s3cret" {
		t.Errorf("DSN() with password = %q", got)
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS cameras")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := Migrate(sqlx.NewDb(db, "postgres")); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	if err := Migrate(sqlx.NewDb(db, "postgres")); err == nil {
		t.Error("expected schema error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
