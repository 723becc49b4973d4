// internal/employee/index.go
//
// Secondary lookup indexes (email, department).
//
// Context
// -------
// The indexes are derived acceleration structures, never a source of truth.
// They map a normalized key (lowercased email or department) to the ids that
// have, or once had, that key.  Soft-deleted records keep their entries;
// every read path filters by active status against the Store, and every
// index-backed lookup has a full-scan fallback that is authoritative.
//
// Each key's id list is mutated through xsync Compute, which runs the update
// function atomically for that key.  Two updates to different keys never
// contend; two updates to the same key serialize.  That is exactly the
// per-key critical section the consistency rules ask for, without a global
// index lock.
package employee

import (
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Index holds the email and department maps.  Construct with NewIndex.
type Index struct {
	byEmail      *xsync.MapOf[string, []int64]
	byDepartment *xsync.MapOf[string, []int64]
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		byEmail:      xsync.NewMapOf[string, []int64](),
		byDepartment: xsync.NewMapOf[string, []int64](),
	}
}

// normalizeKey lowercases and trims an index key.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add registers id under the record's email and department keys.
// Re-adding an id already present under a key is a no-op.
func (ix *Index) Add(e Employee) {
	addID(ix.byEmail, normalizeKey(e.Email), e.ID)
	addID(ix.byDepartment, normalizeKey(e.Department), e.ID)
}

// Remove drops id from the given old email and department keys.  Keys whose
// id list becomes empty are deleted outright so churn cannot grow the maps
// without bound.
func (ix *Index) Remove(oldEmail, oldDepartment string, id int64) {
	removeID(ix.byEmail, normalizeKey(oldEmail), id)
	removeID(ix.byDepartment, normalizeKey(oldDepartment), id)
}

// ByEmail returns the ids recorded under email, oldest insertion first.
// Absent keys yield an empty slice, not an error.
func (ix *Index) ByEmail(email string) []int64 {
	return lookup(ix.byEmail, normalizeKey(email))
}

// ByDepartment returns the ids recorded under department.
func (ix *Index) ByDepartment(department string) []int64 {
	return lookup(ix.byDepartment, normalizeKey(department))
}

func addID(m *xsync.MapOf[string, []int64], key string, id int64) {
	if key == "" {
		return
	}
	m.Compute(key, func(ids []int64, _ bool) ([]int64, bool) {
		if slices.Contains(ids, id) {
			return ids, false
		}
		// Copy-on-write keeps previously returned slices immutable.
		next := make([]int64, len(ids), len(ids)+1)
		copy(next, ids)
		return append(next, id), false
	})
}

func removeID(m *xsync.MapOf[string, []int64], key string, id int64) {
	if key == "" {
		return
	}
	m.Compute(key, func(ids []int64, loaded bool) ([]int64, bool) {
		if !loaded {
			return nil, true
		}
		i := slices.Index(ids, id)
		if i < 0 {
			return ids, false
		}
		next := make([]int64, 0, len(ids)-1)
		next = append(next, ids[:i]...)
		next = append(next, ids[i+1:]...)
		if len(next) == 0 {
			return nil, true // drop the emptied key
		}
		return next, false
	})
}

func lookup(m *xsync.MapOf[string, []int64], key string) []int64 {
	ids, ok := m.Load(key)
	if !ok {
		return nil
	}
	// Lists are copy-on-write, so handing the slice out is safe; copy
	// anyway so callers can sort or trim without surprises.
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}
