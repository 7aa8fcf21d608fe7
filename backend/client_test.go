package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"warungku/models"
)

func TestBearerHeader(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	c := New(ts.URL)

	if err := c.GetJSON(context.Background(), "/menu", nil, "tok-123", nil); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want bearer token", got)
	}

	if err := c.GetJSON(context.Background(), "/menu", nil, "", nil); err != nil {
		t.Fatalf("GetJSON without token: %v", err)
	}
	if got != "" {
		t.Fatalf("Authorization = %q, want unset when no credential", got)
	}
}

func TestErrorCarriesStatusAndBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
	}))
	defer ts.Close()

	err := New(ts.URL).GetJSON(context.Background(), "/cart", nil, "tok", nil)
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if be.Status != http.StatusBadRequest || be.Body != "Cart is empty" {
		t.Fatalf("got %d %q", be.Status, be.Body)
	}
	if IsAuthFailure(err) {
		t.Fatal("400 is not an auth failure")
	}
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatal("IsStatus(400) = false")
	}
}

func TestAuthFailureClassification(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		if !IsAuthFailure(&Error{Status: code}) {
			t.Fatalf("status %d must classify as auth failure", code)
		}
	}
	if IsAuthFailure(&Error{Status: http.StatusInternalServerError}) {
		t.Fatal("500 must not classify as auth failure")
	}
	// No response at all is a transport error, never a credential problem.
	err := New("http://127.0.0.1:0").GetJSON(context.Background(), "/menu", nil, "tok", nil)
	if err == nil || IsAuthFailure(err) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
}

func TestUpdateOrderStatusRawStringBody(t *testing.T) {
	var body []byte
	var path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(models.Order{OrderID: 7, Status: models.StatusInQueue})
	}))
	defer ts.Close()

	err := New(ts.URL).UpdateOrderStatus(context.Background(), "tok", 7, models.StatusInQueue)
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if path != "/order/7/status" {
		t.Fatalf("path = %q", path)
	}
	// The endpoint consumes a bare JSON string literal, not an object.
	if string(body) != `"IN_QUEUE"` {
		t.Fatalf("body = %s, want raw string literal", body)
	}
}

func TestCheckoutQuery(t *testing.T) {
	var table string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table = r.URL.Query().Get("tableNumber")
		json.NewEncoder(w).Encode(models.Order{OrderID: 501})
	}))
	defer ts.Close()

	order, err := New(ts.URL).Checkout(context.Background(), "tok", 5)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if table != "5" || order.OrderID != 501 {
		t.Fatalf("tableNumber = %q, orderID = %d", table, order.OrderID)
	}
}

func TestMenuFilterQuery(t *testing.T) {
	var gotPath, gotCat string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCat = r.URL.Query().Get("category")
		json.NewEncoder(w).Encode([]models.MenuItem{})
	}))
	defer ts.Close()
	c := New(ts.URL)

	if _, err := c.Menu(context.Background(), ""); err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if gotPath != "/menu" {
		t.Fatalf("unfiltered path = %q", gotPath)
	}

	if _, err := c.Menu(context.Background(), "Minuman"); err != nil {
		t.Fatalf("Menu filtered: %v", err)
	}
	if gotPath != "/menu/filter" || gotCat != "Minuman" {
		t.Fatalf("filtered path = %q category = %q", gotPath, gotCat)
	}
}
