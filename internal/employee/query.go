// internal/employee/query.go
//
// Query engine: filter, sort, paginate.
//
// Context
// -------
// RunQuery is a pure function over a snapshot of the store.  It has no side
// effects and no locks, which makes it safe to re-run on any cache miss and
// trivial to test with literal fixtures.
//
// Filter order is fixed: active-status first (cheapest), then department
// exact match, then the free-text substring scan across name, email,
// department, and position.  Total count is taken after filtering and before
// the page slice, so the metadata always describes the whole filtered set.
package employee

import (
	"sort"
	"strings"
)

// Pagination bounds.  PageSize falls back to DefaultPageSize when
// unspecified and is clamped to MaxPageSize.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sort direction values recognized in QueryParams.SortDir.  Anything other
// than "desc" (case-insensitive) sorts ascending.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// RunQuery evaluates params against the given records and returns one page
// plus metadata.  Page and PageSize are normalized here, so callers may pass
// zero values; negative values are treated the same way.
func RunQuery(records []Employee, params QueryParams) QueryResult {
	page := params.Page
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	filtered := applyFilters(records, params)
	sortRecords(filtered, params.SortBy, params.SortDir)

	total := len(filtered)
	totalPages := (total + size - 1) / size

	skip := (page - 1) * size
	end := skip + size
	if skip > total {
		skip = total
	}
	if end > total {
		end = total
	}

	items := make([]Employee, end-skip)
	copy(items, filtered[skip:end])

	return QueryResult{
		Items:       items,
		Page:        page,
		PageSize:    size,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

func applyFilters(records []Employee, params QueryParams) []Employee {
	dept := normalizeKey(params.Department)
	text := strings.ToLower(strings.TrimSpace(params.Filter))

	out := make([]Employee, 0, len(records))
	for _, e := range records {
		if params.IsActive != nil && e.IsActive != *params.IsActive {
			continue
		}
		if dept != "" && normalizeKey(e.Department) != dept {
			continue
		}
		if text != "" && !matchesText(e, text) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesText reports whether the lowercased filter is a substring of any
// searchable field.
func matchesText(e Employee, text string) bool {
	for _, f := range []string{e.FirstName, e.LastName, e.Email, e.Department, e.Position} {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}

// sortRecords orders records in place.  A recognized sortBy sorts by that
// single field with no secondary tie-break beyond sort stability; anything
// else falls back to last name then first name, ascending.
func sortRecords(records []Employee, sortBy, sortDir string) {
	desc := strings.EqualFold(sortDir, SortDesc)

	less := fieldLess(sortBy)
	if less == nil {
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i], records[j]
			al, bl := strings.ToLower(a.LastName), strings.ToLower(b.LastName)
			if al != bl {
				return al < bl
			}
			return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
		})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return less(records[i], records[j])
	})
}

// fieldLess maps a sortBy name to an ascending comparison, or nil when the
// field is not recognized.
func fieldLess(sortBy string) func(a, b Employee) bool {
	str := func(get func(Employee) string) func(a, b Employee) bool {
		return func(a, b Employee) bool {
			return strings.ToLower(get(a)) < strings.ToLower(get(b))
		}
	}
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "firstname":
		return str(func(e Employee) string { return e.FirstName })
	case "lastname":
		return str(func(e Employee) string { return e.LastName })
	case "email":
		return str(func(e Employee) string { return e.Email })
	case "department":
		return str(func(e Employee) string { return e.Department })
	case "position":
		return str(func(e Employee) string { return e.Position })
	case "datecreated":
		return func(a, b Employee) bool { return a.DateCreated.Before(b.DateCreated) }
	case "datemodified":
		return func(a, b Employee) bool { return a.DateModified.Before(b.DateModified) }
	default:
		return nil
	}
}
