// internal/httpapi/handlers_test.go
//
// End-to-end handler tests against the real router, middleware chain, and
// service wiring.  Only the network listener is replaced by httptest.

package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/JMLOSP/UserManagementAPI/internal/config"
	"github.com/JMLOSP/UserManagementAPI/internal/employee"
	"github.com/JMLOSP/UserManagementAPI/internal/querycache"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		HTTP: config.HTTP{ListenAddr: "127.0.0.1:0", DevMode: true},
		Auth: config.Auth{
			JWTSecret:     "handler-test-secret-0123456789",
			TokenTTL:      time.Minute,
			AdminUser:     "admin",
			AdminPassword: "hunter2hunter2",
		},
	}
	svc := employee.NewService(
		employee.NewStore(),
		employee.NewIndex(),
		querycache.New(querycache.Config{}),
		zap.NewNop().Sugar(),
	)

	srv := httptest.NewServer(New(svc, cfg).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	body := `{"username":"admin","password":"hunter2hunter2"}`
	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var out struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expiresIn"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" || out.ExpiresIn != 60 {
		t.Fatalf("login response = %+v", out)
	}
	return out.Token
}

// do issues an authenticated request and returns the response.
func do(t *testing.T, srv *httptest.Server, token, method, path, body string) *http.Response {
	t.Helper()
	var rd *bytes.Buffer
	if body != "" {
		rd = bytes.NewBufferString(body)
	} else {
		rd = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeEmployee(t *testing.T, resp *http.Response) employee.Employee {
	t.Helper()
	defer resp.Body.Close()
	var e employee.Employee
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode employee: %v", err)
	}
	return e
}

const janeBody = `{
	"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
	"phone": "+1 555-0100", "department": "IT", "position": "Engineer"
}`

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	body := `{"username":"admin","password":"wrong"}`
	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestUsersRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/users", "/api/v1/users/1", "/api/v1/users/all"} {
		resp := do(t, srv, "", http.MethodGet, path, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, resp.StatusCode)
		}
	}

	resp := do(t, srv, "not-a-token", http.MethodGet, "/api/v1/users", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestOpenEndpointsSkipAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/metrics"} {
		resp := do(t, srv, "", http.MethodGet, path, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestCreateReadUpdateDeleteLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Create.
	resp := do(t, srv, token, http.MethodPost, "/api/v1/users", janeBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	created := decodeEmployee(t, resp)
	if created.ID == 0 || !created.IsActive {
		t.Fatalf("created = %+v", created)
	}
	if want := fmt.Sprintf("/api/v1/users/%d", created.ID); loc != want {
		t.Fatalf("Location = %q, want %q", loc, want)
	}

	// Read back.
	resp = do(t, srv, token, http.MethodGet, loc, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	got := decodeEmployee(t, resp)
	if got.Email != "jane@example.com" || got.Department != "IT" {
		t.Fatalf("got = %+v", got)
	}

	// Partial update.
	resp = do(t, srv, token, http.MethodPut, loc, `{"position":"Principal Engineer"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	updated := decodeEmployee(t, resp)
	if updated.Position != "Principal Engineer" || updated.FirstName != "Jane" {
		t.Fatalf("updated = %+v", updated)
	}

	// Delete, then the record is gone from reads.
	resp = do(t, srv, token, http.MethodDelete, loc, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp = do(t, srv, token, http.MethodGet, loc, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", resp.StatusCode)
	}
	resp = do(t, srv, token, http.MethodDelete, loc, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := do(t, srv, token, http.MethodPost, "/api/v1/users", janeBody)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create status = %d", resp.StatusCode)
	}

	dup := `{
		"firstName": "Janet", "lastName": "Doe", "email": "JANE@example.com",
		"department": "HR", "position": "Recruiter"
	}`
	resp = do(t, srv, token, http.MethodPost, "/api/v1/users", dup)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"firstName": `},
		{"bad email", `{"firstName":"A","lastName":"B","email":"nope","department":"IT","position":"X"}`},
		{"missing last name", `{"firstName":"A","email":"a@x.com","department":"IT","position":"X"}`},
	}
	for _, c := range cases {
		resp := do(t, srv, token, http.MethodPost, "/api/v1/users", c.body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, resp.StatusCode)
		}
	}
}

func TestQueryParamValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	for _, qs := range []string{"page=0", "page=abc", "pageSize=-1", "isActive=maybe"} {
		resp := do(t, srv, token, http.MethodGet, "/api/v1/users?"+qs, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("?%s: status = %d, want 400", qs, resp.StatusCode)
		}
	}
}

func TestQueryPaginatesAndFilters(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	people := []struct{ first, last, email, dept string }{
		{"Alice", "Zimmer", "alice@x.com", "IT"},
		{"Bob", "Young", "bob@x.com", "IT"},
		{"Carol", "Xu", "carol@x.com", "IT"},
		{"Dave", "White", "dave@x.com", "HR"},
	}
	for _, p := range people {
		body := fmt.Sprintf(
			`{"firstName":%q,"lastName":%q,"email":%q,"department":%q,"position":"Staff"}`,
			p.first, p.last, p.email, p.dept)
		resp := do(t, srv, token, http.MethodPost, "/api/v1/users", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed %s: status = %d", p.email, resp.StatusCode)
		}
	}

	resp := do(t, srv, token, http.MethodGet,
		"/api/v1/users?department=it&pageSize=2&sortBy=lastName&sortDirection=desc", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("query status = %d", resp.StatusCode)
	}
	var page employee.QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalCount != 3 || page.TotalPages != 2 || !page.HasNext || page.HasPrevious {
		t.Fatalf("page meta = %+v", page)
	}
	if len(page.Items) != 2 || page.Items[0].LastName != "Zimmer" || page.Items[1].LastName != "Young" {
		t.Fatalf("items = %+v", page.Items)
	}
}

func TestGetByEmail(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := do(t, srv, token, http.MethodPost, "/api/v1/users", janeBody)
	resp.Body.Close()

	resp = do(t, srv, token, http.MethodGet, "/api/v1/users/by-email?email=JANE@example.com", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decodeEmployee(t, resp)
	if got.FirstName != "Jane" {
		t.Fatalf("got = %+v", got)
	}

	resp = do(t, srv, token, http.MethodGet, "/api/v1/users/by-email?email=ghost@example.com", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown email status = %d, want 404", resp.StatusCode)
	}

	resp = do(t, srv, token, http.MethodGet, "/api/v1/users/by-email", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing param status = %d, want 400", resp.StatusCode)
	}
}

func TestByDepartmentAndExists(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := do(t, srv, token, http.MethodPost, "/api/v1/users", janeBody)
	created := decodeEmployee(t, resp)

	resp = do(t, srv, token, http.MethodGet, "/api/v1/users/department/it", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("department status = %d", resp.StatusCode)
	}
	var list []employee.Employee
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	// Unknown department is an empty JSON array, not null or 404.
	resp2 := do(t, srv, token, http.MethodGet, "/api/v1/users/department/legal", "")
	defer resp2.Body.Close()
	var empty []employee.Employee
	if err := json.NewDecoder(resp2.Body).Decode(&empty); err != nil {
		t.Fatalf("decode empty list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("empty department list = %#v", empty)
	}

	checkExists := func(path string, want bool) {
		resp := do(t, srv, token, http.MethodGet, path, "")
		defer resp.Body.Close()
		var out map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode exists: %v", err)
		}
		if out["exists"] != want {
			t.Fatalf("%s exists = %v, want %v", path, out["exists"], want)
		}
	}
	checkExists(fmt.Sprintf("/api/v1/users/%d/exists", created.ID), true)
	checkExists("/api/v1/users/9999/exists", false)
}

func TestBadPathID(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	for _, path := range []string{"/api/v1/users/abc", "/api/v1/users/0", "/api/v1/users/-3"} {
		resp := do(t, srv, token, http.MethodGet, path, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "", http.MethodGet, "/healthz", "")
	resp.Body.Close()
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
}

func TestListAllOnFreshStoreIsEmptyArray(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := do(t, srv, token, http.MethodGet, "/api/v1/users/all", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var list []employee.Employee
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("fresh store list = %+v", list)
	}
}
