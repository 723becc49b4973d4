// internal/seed/seed_test.go

package seed

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	db := sqlx.NewDb(raw, "mysql")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func seedColumns() []string {
	return []string{
		"id", "first_name", "last_name", "email", "phone",
		"department", "position", "date_created", "date_modified", "is_active",
	}
}

func TestLoadMapsRows(t *testing.T) {
	db, mock := newMockDB(t)

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	modified := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, first_name").WillReturnRows(
		sqlmock.NewRows(seedColumns()).
			AddRow(1, "Jane", "Doe", "jane@x.com", "+1 555-0100", "IT", "Engineer", created, modified, true).
			AddRow(2, "John", "Smith", "john@x.com", "", "HR", "Recruiter", created, created, false),
	)

	got, err := Load(context.Background(), db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	jane := got[0]
	if jane.ID != 1 || jane.Email != "jane@x.com" || !jane.IsActive {
		t.Fatalf("jane = %+v", jane)
	}
	if !jane.DateCreated.Equal(created) || !jane.DateModified.Equal(modified) {
		t.Fatalf("jane timestamps = %v / %v", jane.DateCreated, jane.DateModified)
	}

	// Soft-deleted rows come through so their ids stay burned.
	if john := got[1]; john.ID != 2 || john.IsActive {
		t.Fatalf("john = %+v", john)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLoadEmptyTable(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, first_name").
		WillReturnRows(sqlmock.NewRows(seedColumns()))

	got, err := Load(context.Background(), db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestLoadPropagatesQueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, first_name").
		WillReturnError(context.DeadlineExceeded)

	if _, err := Load(context.Background(), db); err == nil {
		t.Fatal("expected error from query failure")
	}
}
