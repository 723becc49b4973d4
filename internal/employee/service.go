// internal/employee/service.go
//
// Service façade: the public operation surface of the core.
//
// Context
// -------
// The Service composes the Store, the secondary indexes, and the query
// result cache, and is the only place that touches more than one of them.
// Mutations follow a fixed order: uniqueness check, store write, index
// update, cache invalidation.  A single mutation mutex serializes the
// check-then-write window, so a rejected write can never leave a partial
// index entry behind and two concurrent creates can never both pass the
// email uniqueness check.
//
// Reads never take the mutation mutex.  Index lookups are advisory; each
// one falls back to a full scan that is authoritative, so an index that is
// momentarily behind can only cost a scan, never a wrong answer.
//
// Query results are memoized.  Cache misses for the same key are deduped
// through singleflight, mirroring the lazy-load discipline of the tenant
// cache this design grew out of; a duplicate compute on a race would be
// harmless but is cheap to avoid.
package employee

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/JMLOSP/UserManagementAPI/internal/metrics"
)

// ResultCache memoizes query results.  Implemented by internal/querycache;
// declared here so the core does not depend on the cache backend.
type ResultCache interface {
	// Key returns the deterministic cache key for params, including the
	// current invalidation generation.
	Key(params QueryParams) string
	Get(params QueryParams) (QueryResult, bool)
	// Set stores a computed page under key, which the caller captured via
	// Key before computing.  Storing under the captured key rather than
	// re-deriving one means a result computed before an invalidation lands
	// in the superseded generation, where no Get will find it.
	Set(key string, res QueryResult)
	// InvalidateAll logically evicts every entry.  Called on every
	// mutation; per-entry invalidation is not possible because any record
	// may appear in any page under arbitrary filters.
	InvalidateAll()
}

// Service exposes the operation set consumed by the HTTP layer.
type Service struct {
	store *Store
	index *Index
	cache ResultCache
	sfg   singleflight.Group
	mu    sync.Mutex // serializes uniqueness check + write + reindex
	log   *zap.SugaredLogger
}

// NewService wires the store, indexes, and cache into a façade.
func NewService(store *Store, index *Index, cache ResultCache, log *zap.SugaredLogger) *Service {
	return &Service{store: store, index: index, cache: cache, log: log}
}

// Seed bulk-restores records (boot-time only) and rebuilds the indexes.
func (s *Service) Seed(records []Employee) {
	s.store.Restore(records)
	for _, e := range records {
		s.index.Add(e)
	}
	metrics.SetActiveEmployees(s.countActive())
}

// List returns every active record in default order (last name, first name,
// ascending).
func (s *Service) List() []Employee {
	records := s.activeSnapshot()
	sortRecords(records, "", "")
	return records
}

// Query returns one page of results for params, serving from the cache when
// possible.  Identical concurrent misses compute once.
func (s *Service) Query(params QueryParams) QueryResult {
	params = normalizeParams(params)

	if res, ok := s.cache.Get(params); ok {
		metrics.QueryCacheHits.Inc()
		return res
	}
	metrics.QueryCacheMisses.Inc()

	// Capture the key before computing: a mutation that lands mid-compute
	// bumps the generation, and the stale result must not be published
	// under the new one.
	key := s.cache.Key(params)
	v, _, _ := s.sfg.Do(key, func() (any, error) {
		// Double-check after the singleflight barrier.
		if res, ok := s.cache.Get(params); ok {
			return res, nil
		}
		res := RunQuery(s.store.Snapshot(), params)
		s.cache.Set(key, res)
		return res, nil
	})
	return v.(QueryResult)
}

// GetByID returns the active record with the given id.
func (s *Service) GetByID(id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, ErrInvalidInput
	}
	e, ok := s.store.Get(id)
	if !ok || !e.IsActive {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

// GetByEmail returns the active record holding email, case-insensitively.
func (s *Service) GetByEmail(email string) (Employee, error) {
	key := normalizeKey(email)
	if key == "" {
		return Employee{}, ErrInvalidInput
	}

	for _, id := range s.index.ByEmail(key) {
		if e, ok := s.store.Get(id); ok && e.IsActive && normalizeKey(e.Email) == key {
			return e, nil
		}
	}
	// Index miss: the scan is authoritative.
	for _, e := range s.activeSnapshot() {
		if normalizeKey(e.Email) == key {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

// GetByDepartment returns the active records of a department in default
// order.  An unknown department yields an empty slice, not an error.
func (s *Service) GetByDepartment(department string) []Employee {
	key := normalizeKey(department)
	if key == "" {
		return []Employee{}
	}

	var out []Employee
	ids := s.index.ByDepartment(key)
	if len(ids) > 0 {
		for _, id := range ids {
			if e, ok := s.store.Get(id); ok && e.IsActive && normalizeKey(e.Department) == key {
				out = append(out, e)
			}
		}
	} else {
		for _, e := range s.activeSnapshot() {
			if normalizeKey(e.Department) == key {
				out = append(out, e)
			}
		}
	}
	if out == nil {
		out = []Employee{}
	}
	sortRecords(out, "", "")
	return out
}

// Exists reports whether an active record with the given id exists.
func (s *Service) Exists(id int64) bool {
	if id <= 0 {
		return false
	}
	e, ok := s.store.Get(id)
	return ok && e.IsActive
}

// EmailExists reports whether an active record other than excludeID holds
// email.  Pass excludeID 0 for "taken by anyone" semantics.
func (s *Service) EmailExists(email string, excludeID int64) bool {
	return s.emailTaken(normalizeKey(email), excludeID)
}

// Create stores a new record after checking email uniqueness among active
// records.  Returns ErrConflict when the email is taken.
func (s *Service) Create(in CreateInput) (Employee, error) {
	key := normalizeKey(in.Email)
	if key == "" {
		return Employee{}, ErrInvalidInput
	}

	s.mu.Lock()
	if s.emailTaken(key, 0) {
		s.mu.Unlock()
		return Employee{}, ErrConflict
	}
	e := s.store.Create(Employee{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Department: in.Department,
		Position:   in.Position,
	})
	s.index.Add(e)
	s.mu.Unlock()

	s.cache.InvalidateAll()
	metrics.EmployeeCreateTotal.Inc()
	metrics.SetActiveEmployees(s.countActive())
	s.log.Infow("employee created", "id", e.ID, "department", e.Department)
	return e, nil
}

// Update applies the non-nil fields of in to the active record id.  When
// the email changes, uniqueness is re-checked excluding the record itself.
func (s *Service) Update(id int64, in UpdateInput) (Employee, error) {
	if id <= 0 {
		return Employee{}, ErrInvalidInput
	}

	s.mu.Lock()
	cur, ok := s.store.Get(id)
	if !ok || !cur.IsActive {
		s.mu.Unlock()
		return Employee{}, ErrNotFound
	}

	if in.Email != nil && normalizeKey(*in.Email) != normalizeKey(cur.Email) {
		if normalizeKey(*in.Email) == "" {
			s.mu.Unlock()
			return Employee{}, ErrInvalidInput
		}
		if s.emailTaken(normalizeKey(*in.Email), id) {
			s.mu.Unlock()
			return Employee{}, ErrConflict
		}
	}

	err := s.store.Mutate(id, func(e *Employee) {
		if in.FirstName != nil {
			e.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			e.LastName = *in.LastName
		}
		if in.Email != nil {
			e.Email = *in.Email
		}
		if in.Phone != nil {
			e.Phone = *in.Phone
		}
		if in.Department != nil {
			e.Department = *in.Department
		}
		if in.Position != nil {
			e.Position = *in.Position
		}
	})
	if err != nil {
		s.mu.Unlock()
		return Employee{}, err
	}

	updated, _ := s.store.Get(id)
	if normalizeKey(updated.Email) != normalizeKey(cur.Email) ||
		normalizeKey(updated.Department) != normalizeKey(cur.Department) {
		s.index.Remove(cur.Email, cur.Department, id)
		s.index.Add(updated)
	}
	s.mu.Unlock()

	s.cache.InvalidateAll()
	metrics.EmployeeUpdateTotal.Inc()
	s.log.Infow("employee updated", "id", id)
	return updated, nil
}

// Delete soft-deletes the active record id.  The record and its index
// entries stay behind; every read path filters by IsActive.  Terminal:
// nothing in this surface flips the flag back.
func (s *Service) Delete(id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}

	s.mu.Lock()
	cur, ok := s.store.Get(id)
	if !ok || !cur.IsActive {
		s.mu.Unlock()
		return ErrNotFound
	}
	_ = s.store.Mutate(id, func(e *Employee) { e.IsActive = false })
	s.mu.Unlock()

	s.cache.InvalidateAll()
	metrics.EmployeeDeleteTotal.Inc()
	metrics.SetActiveEmployees(s.countActive())
	s.log.Infow("employee deleted", "id", id)
	return nil
}

//
// helpers
//

func (s *Service) activeSnapshot() []Employee {
	all := s.store.Snapshot()
	out := make([]Employee, 0, len(all))
	for _, e := range all {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out
}

// emailTaken checks the index first, then falls back to the full scan.
// Callers pass a normalized key.
func (s *Service) emailTaken(key string, excludeID int64) bool {
	if key == "" {
		return false
	}
	for _, id := range s.index.ByEmail(key) {
		if id == excludeID {
			continue
		}
		if e, ok := s.store.Get(id); ok && e.IsActive && normalizeKey(e.Email) == key {
			return true
		}
	}
	for _, e := range s.store.Snapshot() {
		if e.ID != excludeID && e.IsActive && normalizeKey(e.Email) == key {
			return true
		}
	}
	return false
}

func (s *Service) countActive() int {
	return len(s.activeSnapshot())
}

// normalizeParams canonicalizes the query tuple so equivalent requests share
// one cache key and the engine sees pre-clamped values.
func normalizeParams(p QueryParams) QueryParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	p.SortBy = strings.ToLower(strings.TrimSpace(p.SortBy))
	p.SortDir = strings.ToLower(strings.TrimSpace(p.SortDir))
	p.Filter = strings.ToLower(strings.TrimSpace(p.Filter))
	p.Department = normalizeKey(p.Department)
	return p
}
