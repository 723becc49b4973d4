// internal/employee/store.go
//
// In-memory record store.
//
// Context
// -------
// The Store is the single source of truth for employee records.  It does one
// job: keyed storage plus id generation.  It never touches the secondary
// indexes or the query cache; the Service orchestrates those so a failed
// uniqueness check leaves no partial state behind.
//
// The map is guarded by one RWMutex, which is plenty for a single-process
// working set of this size.  Id allocation uses an atomic counter so that
// concurrent creates always receive distinct, strictly increasing ids even
// before they take the write lock.
package employee

import (
	"sync"
	"sync/atomic"
	"time"
)

// Store owns the authoritative employee map.  Construct with NewStore; the
// zero value is not usable.
type Store struct {
	mu      sync.RWMutex
	records map[int64]Employee
	nextID  atomic.Int64
}

// NewStore returns an empty store whose first issued id is 1.
func NewStore() *Store {
	return &Store{records: make(map[int64]Employee)}
}

// Create assigns the next id, stamps both timestamps, marks the record
// active, and stores it.  It always succeeds.
func (s *Store) Create(e Employee) Employee {
	now := time.Now().UTC()
	e.ID = s.nextID.Add(1)
	e.DateCreated = now
	e.DateModified = now
	e.IsActive = true

	s.mu.Lock()
	s.records[e.ID] = e
	s.mu.Unlock()
	return e
}

// Get returns the record regardless of active status.  Callers filter.
func (s *Store) Get(id int64) (Employee, bool) {
	s.mu.RLock()
	e, ok := s.records[id]
	s.mu.RUnlock()
	return e, ok
}

// Mutate applies fn to the stored record under the write lock and bumps
// DateModified.  Returns ErrNotFound when id is absent.  Mutations to the
// same record serialize on the lock, so there are no lost updates.
func (s *Store) Mutate(id int64, fn func(*Employee)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	fn(&e)
	e.DateModified = time.Now().UTC()
	s.records[id] = e
	return nil
}

// Snapshot returns value copies of every record, active or not, in no
// particular order.  The query engine sorts; nothing here needs to.
func (s *Store) Snapshot() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.records))
	for _, e := range s.records {
		out = append(out, e)
	}
	return out
}

// Len reports the total number of records, including soft-deleted ones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Restore bulk-loads pre-existing records, keeping their ids and
// timestamps, and advances the id counter past the highest seeded id so
// future creates never collide.  Used by the boot-time seeder only.
func (s *Store) Restore(records []Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var max int64
	for _, e := range records {
		if e.ID <= 0 {
			continue
		}
		s.records[e.ID] = e
		if e.ID > max {
			max = e.ID
		}
	}
	for {
		cur := s.nextID.Load()
		if cur >= max || s.nextID.CompareAndSwap(cur, max) {
			return
		}
	}
}
