package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestSearchShortQuery(t *testing.T) {
	router := newTestRouter()

	registerUser(t, router, "alice", "a@x.com", "pw1")

	// One character after trimming returns an empty list.
	for _, q := range []string{"a", "%20a%20", ""} {
		w := doJSON(t, router, http.MethodGet, "/users/search?q="+q, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("search %q: status %d", q, w.Code)
		}
		var results []map[string]string
		decode(t, w, &results)
		if len(results) != 0 {
			t.Errorf("search %q: expected no results, got %v", q, results)
		}
	}
}

func TestSearchCapAndNameFallback(t *testing.T) {
	router := newTestRouter()

	for i := 0; i < 12; i++ {
		registerUser(t, router, fmt.Sprintf("student%02d", i), fmt.Sprintf("s%02d@x.com", i), "pw")
	}

	w := doJSON(t, router, http.MethodGet, "/users/search?q=student", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("search: status %d", w.Code)
	}
	var results []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	decode(t, w, &results)
	if len(results) != 10 {
		t.Fatalf("expected results capped at 10, got %d", len(results))
	}
	for _, r := range results {
		// No full name on these fixtures, so name falls back to username.
		if r.Name != r.Username {
			t.Errorf("expected name fallback to username, got %+v", r)
		}
	}
}

func TestSearchMatchesFullName(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"username":  "jdoe",
		"email":     "j@x.com",
		"password":  "pw",
		"full_name": "John Doe",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("register: status %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/users/search?q=Doe", nil, "")
	var results []struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	decode(t, w, &results)
	if len(results) != 1 || results[0].Name != "John Doe" || results[0].Username != "jdoe" {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestUserCRUD(t *testing.T) {
	router := newTestRouter()

	// Parallel creation path: no token issued, same conflict rules.
	w := doJSON(t, router, http.MethodPost, "/users/", map[string]string{
		"username": "carol",
		"email":    "c@x.com",
		"password": "pw",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("create user: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, router, http.MethodPost, "/users/", map[string]string{
		"username": "carol",
		"email":    "other@x.com",
		"password": "pw",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate username, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/users/"+created.ID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get user: status %d", w.Code)
	}
	var got struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decode(t, w, &got)
	if got.Username != "carol" || got.Email != "c@x.com" {
		t.Errorf("unexpected user: %+v", got)
	}

	// Update is deliberately unauthenticated.
	w = doJSON(t, router, http.MethodPut, "/users/"+created.ID, map[string]string{"email": "new@x.com"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("update user: status %d body %s", w.Code, w.Body.String())
	}
	decode(t, w, &got)
	if got.Email != "new@x.com" {
		t.Errorf("email not updated: %+v", got)
	}

	w = doJSON(t, router, http.MethodDelete, "/users/"+created.ID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete user: status %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/users/"+created.ID, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/users/"+created.ID, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
}

func TestListUsers(t *testing.T) {
	router := newTestRouter()

	registerUser(t, router, "alice", "a@x.com", "pw")
	registerUser(t, router, "bob", "b@x.com", "pw")

	w := doJSON(t, router, http.MethodGet, "/users/", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list users: status %d", w.Code)
	}
	var users []map[string]string
	decode(t, w, &users)
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
