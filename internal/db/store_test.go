package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/terraincognita07/ovira/internal/store"
	"github.com/terraincognita07/ovira/internal/store/storetest"
)

func TestSQLiteStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		database, err := OpenSQLite(filepath.Join(t.TempDir(), "ovira.db"), nil)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		s := NewStore(database)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestPostgresStoreContract(t *testing.T) {
	dsn := os.Getenv("OVIRA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("OVIRA_TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		database, err := OpenPostgres(dsn, nil)
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		for _, table := range []string{"symptom_logs", "health_reports", "profiles"} {
			if err := database.Exec("DELETE FROM " + table).Error; err != nil {
				t.Fatalf("reset %s: %v", table, err)
			}
		}
		s := NewStore(database)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
