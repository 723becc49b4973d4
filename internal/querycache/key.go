// internal/querycache/key.go
//
// Deterministic cache-key serialization for the query-parameter tuple.
// Segments are joined with "::" in a fixed field order, so two equal tuples
// always produce the same key and any field change produces a different
// one.  No reflection: the tuple is a closed struct, so spelling the fields
// out is both faster and harder to get subtly wrong.
package querycache

import (
	"strconv"
	"strings"

	"github.com/JMLOSP/UserManagementAPI/internal/employee"
)

const keySeparator = "::"

// serializeKey builds "v<generation>::users.query::<field segments>".
// Callers pass normalized params; the key does not re-normalize.
func serializeKey(generation uint64, p employee.QueryParams) string {
	active := "any"
	if p.IsActive != nil {
		active = strconv.FormatBool(*p.IsActive)
	}

	var b strings.Builder
	b.Grow(96)
	b.WriteString("v")
	b.WriteString(strconv.FormatUint(generation, 10))
	b.WriteString(keySeparator)
	b.WriteString("users.query")
	b.WriteString(keySeparator)
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(p.Page))
	b.WriteString(keySeparator)
	b.WriteString("size=")
	b.WriteString(strconv.Itoa(p.PageSize))
	b.WriteString(keySeparator)
	b.WriteString("sort=")
	b.WriteString(p.SortBy)
	b.WriteString(keySeparator)
	b.WriteString("dir=")
	b.WriteString(p.SortDir)
	b.WriteString(keySeparator)
	b.WriteString("filter=")
	b.WriteString(p.Filter)
	b.WriteString(keySeparator)
	b.WriteString("dept=")
	b.WriteString(p.Department)
	b.WriteString(keySeparator)
	b.WriteString("active=")
	b.WriteString(active)
	return b.String()
}
