package track

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"warungku/backend"
	"warungku/kv"
	"warungku/models"
	"warungku/session"

	"github.com/stretchr/testify/require"
)

func orderServer(t *testing.T, orders []models.Order, status int) *backend.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /order/my", func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			http.Error(w, "nope", status)
			return
		}
		json.NewEncoder(w).Encode(orders)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return backend.New(ts.URL)
}

func testView(t *testing.T, orders []models.Order, status int) *View {
	t.Helper()
	sess := session.NewForTest(kv.NewMemory(), "sid-1", "budi", "CUSTOMER")
	return NewView(orderServer(t, orders, status), "good-token", sess)
}

func TestProgressFraction(t *testing.T) {
	cases := []struct {
		status string
		want   float64
	}{
		{models.StatusConfirmed, 0.25},
		{models.StatusInQueue, 0.5},
		{models.StatusInProgress, 0.75},
		{models.StatusDelivered, 1.0},
		{"in_progress", 0.75}, // case-insensitive
		{"CANCELLED", 0},      // unknown renders as zero, never panics
		{"", 0},
	}
	for _, tc := range cases {
		got := ProgressFraction(models.Order{Status: tc.status})
		require.Equal(t, tc.want, got, "status %q", tc.status)
	}
}

func TestLoadOrder(t *testing.T) {
	orders := []models.Order{
		{OrderID: 500, Status: models.StatusDelivered},
		{OrderID: 501, Status: models.StatusInQueue},
	}
	v := testView(t, orders, 0)

	got, err := v.LoadOrder(context.Background(), 501)
	require.NoError(t, err)
	require.Equal(t, models.StatusInQueue, got.Status)
}

func TestLoadOrderNotFoundVersusTransport(t *testing.T) {
	// A successful fetch without the order is not-found; nothing to retry.
	v := testView(t, []models.Order{{OrderID: 500}}, 0)
	_, err := v.LoadOrder(context.Background(), 999)
	require.ErrorIs(t, err, ErrOrderNotFound)

	// A failed fetch is a transport error and must not masquerade as
	// not-found.
	v = testView(t, nil, http.StatusInternalServerError)
	_, err = v.LoadOrder(context.Background(), 999)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrOrderNotFound)
}

func TestAcknowledgeOnlyWhenDelivered(t *testing.T) {
	ctx := context.Background()
	v := testView(t, nil, 0)

	inProgress := models.Order{OrderID: 501, Status: models.StatusInProgress}
	require.NoError(t, v.Acknowledge(ctx, inProgress))
	require.False(t, v.Project(ctx, inProgress).Acknowledged)

	delivered := models.Order{OrderID: 501, Status: models.StatusDelivered}
	require.NoError(t, v.Acknowledge(ctx, delivered))
	require.True(t, v.Project(ctx, delivered).Acknowledged)
}

func TestProjectTerminal(t *testing.T) {
	ctx := context.Background()
	v := testView(t, nil, 0)
	delivered := models.Order{OrderID: 42, Status: models.StatusDelivered}

	st := v.Project(ctx, delivered)
	require.True(t, st.Delivered)
	require.False(t, st.Terminal, "delivered alone is not terminal")

	require.NoError(t, v.Acknowledge(ctx, delivered))
	st = v.Project(ctx, delivered)
	require.True(t, st.Terminal)

	// Projection is pure; repeating it changes nothing.
	require.Equal(t, st, v.Project(ctx, delivered))
}

func TestStaleAckIgnoredBeforeDelivery(t *testing.T) {
	// A flag written while delivered must not leak into the display if the
	// server ever reports an earlier status again.
	ctx := context.Background()
	v := testView(t, nil, 0)
	require.NoError(t, v.acks.Acknowledge(ctx, 42))

	st := v.Project(ctx, models.Order{OrderID: 42, Status: models.StatusInQueue})
	require.False(t, st.Acknowledged)
	require.False(t, st.Terminal)
}

func TestResetClearsFlag(t *testing.T) {
	ctx := context.Background()
	v := testView(t, nil, 0)
	delivered := models.Order{OrderID: 42, Status: models.StatusDelivered}

	require.NoError(t, v.Acknowledge(ctx, delivered))
	v.Reset(ctx, 42)
	require.False(t, v.Project(ctx, delivered).Acknowledged)
}
