// internal/employee/model.go
//
// Core employee record and query types.
//
// Context
// -------
// Employee is the authoritative entity of this service.  The Store owns the
// only canonical copies; everything handed outward (handlers, cache, seed)
// works with value copies, so callers can never mutate stored state behind
// the Store's back.
//
// Soft delete is modelled with IsActive.  A record whose flag is false stays
// in storage and in the secondary indexes, but every read path except raw
// Store.Get filters it out.  The flag transitions true to false exactly once;
// there is no resurrection operation.
package employee

import "time"

// Employee is the record managed by this service.  ID is assigned by the
// Store, is strictly increasing, and is never reused.  Email is unique among
// active records under case-insensitive comparison.
type Employee struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
	DateCreated  time.Time `json:"dateCreated"`
	DateModified time.Time `json:"dateModified"`
	IsActive     bool      `json:"isActive"`
}

// CreateInput carries the fields accepted on create.  Inputs are expected to
// arrive already sanitized (see internal/sanitize); the service only enforces
// cross-record invariants such as email uniqueness.
type CreateInput struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,max=32"`
	Department string `json:"department" validate:"required,max=100"`
	Position   string `json:"position" validate:"required,max=100"`
}

// UpdateInput carries a partial update.  Nil fields are left untouched, so
// the contract is PATCH-like even though the HTTP verb is PUT.
type UpdateInput struct {
	FirstName  *string `json:"firstName" validate:"omitempty,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email,max=254"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
}

// QueryParams is the full tuple of list-query parameters.  The zero value is
// valid and means "first page, default size, default order, no filters".
type QueryParams struct {
	Page       int
	PageSize   int
	SortBy     string
	SortDir    string
	Filter     string
	Department string
	IsActive   *bool
}

// QueryResult is one page of employees plus pagination metadata.  TotalCount
// is computed over the filtered set before the page slice is taken.
type QueryResult struct {
	Items       []Employee `json:"items"`
	Page        int        `json:"page"`
	PageSize    int        `json:"pageSize"`
	TotalCount  int        `json:"totalCount"`
	TotalPages  int        `json:"totalPages"`
	HasNext     bool       `json:"hasNextPage"`
	HasPrevious bool       `json:"hasPreviousPage"`
}
