// internal/seed/seed.go
//
// Boot-time store seeding from an optional MySQL source.
//
// Context
// -------
// The record store is volatile by design.  Operators who want the service
// to come up with an existing data set point `database.seed_dsn` at a MySQL
// database holding an `employee` table; Load reads it once during boot and
// the rows are restored into the in-memory store.  Nothing is ever written
// back — the DSN is a read-only bootstrap input, not persistence.
package seed

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JMLOSP/UserManagementAPI/internal/employee"
	"github.com/JMLOSP/UserManagementAPI/internal/metrics"
)

// row mirrors the employee table.  Timestamps are stored as DATETIME in
// UTC; parseTime=true on the DSN maps them to time.Time.
type row struct {
	ID           int64     `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	Department   string    `db:"department"`
	Position     string    `db:"position"`
	DateCreated  time.Time `db:"date_created"`
	DateModified time.Time `db:"date_modified"`
	IsActive     bool      `db:"is_active"`
}

// Load reads every employee row, soft-deleted ones included, so that ids
// issued before a restart stay burned afterwards.
func Load(ctx context.Context, db *sqlx.DB) ([]employee.Employee, error) {
	const q = `
        SELECT id, first_name, last_name, email, phone,
               department, position, date_created, date_modified, is_active
        FROM   employee
        ORDER  BY id`

	var rows []row
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}

	out := make([]employee.Employee, 0, len(rows))
	for _, r := range rows {
		out = append(out, employee.Employee{
			ID:           r.ID,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Email:        r.Email,
			Phone:        r.Phone,
			Department:   r.Department,
			Position:     r.Position,
			DateCreated:  r.DateCreated,
			DateModified: r.DateModified,
			IsActive:     r.IsActive,
		})
	}
	metrics.SeedRecordsTotal.Add(float64(len(out)))
	return out, nil
}
