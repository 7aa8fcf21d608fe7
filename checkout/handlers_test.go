package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"warungku/backend"
	"warungku/globals"
	"warungku/kv"
	"warungku/models"
	"warungku/session"

	"github.com/stretchr/testify/require"
)

func gatewayBackend(t *testing.T, lines []models.CartLine) *backend.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(lines)
	})
	mux.HandleFunc("POST /cart/checkout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Order{OrderID: 501, QueueNumber: 7, TotalPrice: 40000})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return backend.New(ts.URL)
}

func submitRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	ctx := context.Background()
	s := session.NewForTest(kv.NewMemory(), "sid-1", "budi", "CUSTOMER")
	if err := s.SetCredential(ctx, "tok"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), globals.SessionKey, s))
}

func TestSubmitHandlerSuccess(t *testing.T) {
	h := NewHandlers(gatewayBackend(t, []models.CartLine{{MenuID: 1, Quantity: 2, Price: 15000}}))

	rec := httptest.NewRecorder()
	h.Submit(rec, submitRequest(t, `{"tableNumber":"5"}`), nil)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, float64(501), resp["orderId"])
	require.Equal(t, "/track/501", resp["redirect"])
	// The page owns the success-panel timer; the handler only reports it.
	require.Equal(t, float64(SuccessDelay.Milliseconds()), resp["redirectAfter"])
}

func TestSubmitHandlerEmptyCart(t *testing.T) {
	h := NewHandlers(gatewayBackend(t, nil))

	rec := httptest.NewRecorder()
	h.Submit(rec, submitRequest(t, `{"tableNumber":"5"}`), nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Keranjang Anda kosong")
}

func TestNopSchedulerNeverRuns(t *testing.T) {
	ran := false
	cancel := nopScheduler{}.AfterFunc(time.Nanosecond, func() { ran = true })
	cancel()
	time.Sleep(time.Millisecond)
	require.False(t, ran, "transport path must not arm a real timer")
}
