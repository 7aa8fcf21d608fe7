package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warungku/backend"
	"warungku/kv"
	"warungku/session"
)

func registerBackend(t *testing.T, status int) (*Handlers, *int, *[]byte) {
	t.Helper()
	var calls int
	var body []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		body, _ = io.ReadAll(r.Body)
		if status != http.StatusOK {
			http.Error(w, "Username already exists", status)
			return
		}
		w.Write([]byte(`"Customer registered successfully"`))
	}))
	t.Cleanup(ts.Close)
	sessions := session.NewManager(kv.NewMemory(), []byte("test-secret"))
	return NewHandlers(backend.New(ts.URL), sessions), &calls, &body
}

func TestRegisterRequiresAllFields(t *testing.T) {
	h, calls, _ := registerBackend(t, http.StatusOK)

	incomplete := []string{
		`{"username":"budi","password":"x","name":"Budi"}`,
		`{"username":"","password":"x","name":"Budi","noTelp":"0812"}`,
		`not json`,
	}
	for _, body := range incomplete {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		h.Register(rec, req, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
	if *calls != 0 {
		t.Fatalf("incomplete forms reached the backend %d times", *calls)
	}
}

func TestRegisterSuccess(t *testing.T) {
	h, calls, sent := registerBackend(t, http.StatusOK)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"budi","password":"rahasia","name":"Budi","noTelp":"0812"}`))
	h.Register(rec, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if *calls != 1 {
		t.Fatalf("backend calls = %d", *calls)
	}
	var forwarded map[string]string
	if err := json.Unmarshal(*sent, &forwarded); err != nil {
		t.Fatalf("decode forwarded body: %v", err)
	}
	if forwarded["username"] != "budi" || forwarded["noTelp"] != "0812" {
		t.Fatalf("forwarded = %v", forwarded)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["redirect"] != "/login" {
		t.Fatalf("redirect = %q", resp["redirect"])
	}
}

func TestRegisterUsernameTaken(t *testing.T) {
	h, _, _ := registerBackend(t, http.StatusConflict)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"budi","password":"rahasia","name":"Budi","noTelp":"0812"}`))
	h.Register(rec, req, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
