package admin

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warungku/backend"
	"warungku/globals"
	"warungku/kv"
	"warungku/session"

	"github.com/julienschmidt/httprouter"
)

func adminRequest(t *testing.T, method, target string, body string) *http.Request {
	t.Helper()
	ctx := context.Background()
	s := session.NewForTest(kv.NewMemory(), "sid-admin", "admin", "ADMIN")
	if err := s.SetCredential(ctx, "admin-tok"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), globals.SessionKey, s))
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	var upstreamCalls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
	}))
	defer ts.Close()
	h := &Handlers{API: backend.New(ts.URL)}

	for _, body := range []string{`{"status":"CANCELLED"}`, `{"status":""}`, `not json`} {
		rec := httptest.NewRecorder()
		req := adminRequest(t, http.MethodPut, "/api/admin/orders/7/status", body)
		h.UpdateOrderStatus(rec, req, httprouter.Params{{Key: "orderId", Value: "7"}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
	if upstreamCalls != 0 {
		t.Fatalf("invalid statuses reached the backend %d times", upstreamCalls)
	}
}

func TestUpdateOrderStatusForwardsRawStringLiteral(t *testing.T) {
	var gotPath string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	h := &Handlers{API: backend.New(ts.URL)}

	rec := httptest.NewRecorder()
	req := adminRequest(t, http.MethodPut, "/api/admin/orders/7/status", `{"status":"in_queue"}`)
	h.UpdateOrderStatus(rec, req, httprouter.Params{{Key: "orderId", Value: "7"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if gotPath != "/order/7/status" {
		t.Fatalf("path = %q", gotPath)
	}
	if string(gotBody) != `"IN_QUEUE"` {
		t.Fatalf("body = %s, want normalized raw string literal", gotBody)
	}
}
