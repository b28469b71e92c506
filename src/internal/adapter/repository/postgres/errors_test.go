package postgres

import (
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/lib/pq"
)

func TestTranslateNoRows(t *testing.T) {
	err := translate("get customer by id", sql.ErrNoRows)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTranslateUniqueViolation(t *testing.T) {
	err := translate("create customer", &pq.Error{Code: "23505", Constraint: "clientes_documento_identidad_key"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "clientes_documento_identidad_key") {
		t.Fatalf("expected constraint name in %q", err.Error())
	}
}

func TestTranslateNumericOutOfRange(t *testing.T) {
	err := translate("create loan application", &pq.Error{Code: "22003"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if strings.Contains(err.Error(), "pq:") {
		t.Fatalf("expected driver text to stay out of %q", err.Error())
	}
}

func TestTranslateOtherErrors(t *testing.T) {
	cause := &pq.Error{Code: "23503"}
	err := translate("create loan application", cause)
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected unclassified error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped driver error")
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	ups, downs := 0, 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("expected matching up and down migrations, got %d up and %d down", ups, downs)
	}
}
