// internal/employee/query_test.go
//
// Unit-tests for the query engine: filter order, sorting, and pagination
// math.  Fixtures are literal so every expectation is visible at the call
// site.

package employee

import (
	"testing"
	"time"
)

func fixtures() []Employee {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id int64, first, last, email, dept, pos string, active bool, day int) Employee {
		return Employee{
			ID: id, FirstName: first, LastName: last, Email: email,
			Department: dept, Position: pos, IsActive: active,
			DateCreated:  base.AddDate(0, 0, day),
			DateModified: base.AddDate(0, 0, day),
		}
	}
	return []Employee{
		mk(1, "Alice", "Zimmer", "alice@corp.com", "IT", "Engineer", true, 0),
		mk(2, "Bob", "Young", "bob@corp.com", "IT", "Engineer", true, 1),
		mk(3, "Carol", "Xu", "carol@corp.com", "IT", "Manager", true, 2),
		mk(4, "Dave", "White", "dave@corp.com", "HR", "Recruiter", true, 3),
		mk(5, "Erin", "Vance", "erin@corp.com", "HR", "Recruiter", false, 4),
	}
}

func boolPtr(b bool) *bool { return &b }

func TestRunQuery_ActiveFilter(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{IsActive: boolPtr(true)})
	if res.TotalCount != 4 {
		t.Fatalf("TotalCount = %d, want 4", res.TotalCount)
	}
	res = RunQuery(fixtures(), QueryParams{IsActive: boolPtr(false)})
	if res.TotalCount != 1 || res.Items[0].ID != 5 {
		t.Fatalf("inactive filter returned %+v", res.Items)
	}
}

func TestRunQuery_DepartmentFilterCaseInsensitive(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{Department: "it"})
	if res.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want 3", res.TotalCount)
	}
	for _, e := range res.Items {
		if e.Department != "IT" {
			t.Fatalf("unexpected department %q", e.Department)
		}
	}
}

func TestRunQuery_FreeTextMatchesAcrossFields(t *testing.T) {
	// "recruiter" matches position only; "corp" matches every email.
	res := RunQuery(fixtures(), QueryParams{Filter: "RECRUITER"})
	if res.TotalCount != 2 {
		t.Fatalf("position match: TotalCount = %d, want 2", res.TotalCount)
	}
	res = RunQuery(fixtures(), QueryParams{Filter: "corp"})
	if res.TotalCount != 5 {
		t.Fatalf("email match: TotalCount = %d, want 5", res.TotalCount)
	}
	res = RunQuery(fixtures(), QueryParams{Filter: "xu"})
	if res.TotalCount != 1 || res.Items[0].ID != 3 {
		t.Fatalf("last-name match: %+v", res.Items)
	}
}

func TestRunQuery_DefaultSortLastNameThenFirst(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{PageSize: 100})
	want := []string{"Vance", "White", "Xu", "Young", "Zimmer"}
	for i, e := range res.Items {
		if e.LastName != want[i] {
			t.Fatalf("position %d: last name %q, want %q", i, e.LastName, want[i])
		}
	}
}

func TestRunQuery_UnrecognizedSortFallsBackToDefault(t *testing.T) {
	got := RunQuery(fixtures(), QueryParams{SortBy: "shoeSize", PageSize: 100})
	want := RunQuery(fixtures(), QueryParams{PageSize: 100})
	for i := range want.Items {
		if got.Items[i].ID != want.Items[i].ID {
			t.Fatalf("position %d: id %d, want %d", i, got.Items[i].ID, want.Items[i].ID)
		}
	}
}

func TestRunQuery_ExplicitSortDescending(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{SortBy: "firstname", SortDir: "desc", PageSize: 100})
	want := []string{"Erin", "Dave", "Carol", "Bob", "Alice"}
	for i, e := range res.Items {
		if e.FirstName != want[i] {
			t.Fatalf("position %d: first name %q, want %q", i, e.FirstName, want[i])
		}
	}
}

func TestRunQuery_SortByCreatedTimestamp(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{SortBy: "dateCreated", SortDir: "desc", PageSize: 100})
	if res.Items[0].ID != 5 || res.Items[4].ID != 1 {
		t.Fatalf("dateCreated desc order wrong: first=%d last=%d", res.Items[0].ID, res.Items[4].ID)
	}
}

func TestRunQuery_PaginationMath(t *testing.T) {
	// 25 records, pageSize 10: 3 pages.
	var records []Employee
	for i := 1; i <= 25; i++ {
		records = append(records, Employee{ID: int64(i), LastName: "L", IsActive: true})
	}

	cases := []struct {
		page    int
		wantLen int
		hasNext bool
		hasPrev bool
	}{
		{1, 10, true, false},
		{2, 10, true, true},
		{3, 5, false, true},
		{4, 0, false, true},
	}
	for _, c := range cases {
		res := RunQuery(records, QueryParams{Page: c.page, PageSize: 10})
		if res.TotalCount != 25 || res.TotalPages != 3 {
			t.Fatalf("page %d: totals = %d/%d, want 25/3", c.page, res.TotalCount, res.TotalPages)
		}
		if len(res.Items) != c.wantLen {
			t.Fatalf("page %d: len = %d, want %d", c.page, len(res.Items), c.wantLen)
		}
		if res.HasNext != c.hasNext || res.HasPrevious != c.hasPrev {
			t.Fatalf("page %d: next/prev = %v/%v, want %v/%v",
				c.page, res.HasNext, res.HasPrevious, c.hasNext, c.hasPrev)
		}
	}
}

func TestRunQuery_PageSizeClampedAndDefaulted(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{PageSize: 10000})
	if res.PageSize != MaxPageSize {
		t.Fatalf("PageSize = %d, want clamp to %d", res.PageSize, MaxPageSize)
	}
	res = RunQuery(fixtures(), QueryParams{})
	if res.PageSize != DefaultPageSize || res.Page != 1 {
		t.Fatalf("defaults = page %d size %d, want 1/%d", res.Page, res.PageSize, DefaultPageSize)
	}
}

// Scenario from the acceptance list: three-person IT department, last name
// descending, two per page.
func TestRunQuery_DepartmentSortedPagedScenario(t *testing.T) {
	res := RunQuery(fixtures(), QueryParams{
		Department: "IT",
		SortBy:     "lastname",
		SortDir:    "desc",
		Page:       1,
		PageSize:   2,
	})
	if len(res.Items) != 2 {
		t.Fatalf("len = %d, want 2", len(res.Items))
	}
	if res.Items[0].LastName != "Zimmer" || res.Items[1].LastName != "Young" {
		t.Fatalf("order = %q, %q, want Zimmer, Young", res.Items[0].LastName, res.Items[1].LastName)
	}
	if !res.HasNext || res.HasPrevious {
		t.Fatalf("next/prev = %v/%v, want true/false", res.HasNext, res.HasPrevious)
	}
}

func TestRunQuery_IsPureOverItsInput(t *testing.T) {
	records := fixtures()
	RunQuery(records, QueryParams{SortBy: "email", SortDir: "desc"})
	// RunQuery sorts a filtered copy; the caller's slice order must survive.
	for i, e := range records {
		if e.ID != int64(i+1) {
			t.Fatalf("input slice reordered at %d: id %d", i, e.ID)
		}
	}
}
