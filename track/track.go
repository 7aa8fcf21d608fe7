package track

import (
	"context"
	"errors"
	"strings"

	"warungku/backend"
	"warungku/models"
)

// ErrOrderNotFound means the order list fetch succeeded but no order matched
// the requested id. Callers must treat it differently from a transport
// failure: there is nothing to retry.
var ErrOrderNotFound = errors.New("track: order not found")

// AckStore is the slice of the session store the status view needs: one
// cosmetic boolean per order id, never synced to the server.
type AckStore interface {
	Acknowledged(ctx context.Context, orderID int) bool
	Acknowledge(ctx context.Context, orderID int) error
	ClearAcknowledged(ctx context.Context, orderID int)
}

// View observes one order. The client never requests a status transition;
// every move along the flow is server-side admin action.
type View struct {
	api   *backend.Client
	token string
	acks  AckStore
}

func NewView(api *backend.Client, token string, acks AckStore) *View {
	return &View{api: api, token: token, acks: acks}
}

// LoadOrder fetches the caller's full order list and scans for the one
// matching orderID. The backend offers no single-order endpoint, so this
// stays O(n) in the caller's order history.
func (v *View) LoadOrder(ctx context.Context, orderID int) (models.Order, error) {
	orders, err := v.api.MyOrders(ctx, v.token)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// StatusIndex locates a status in the display flow, -1 when unrecognized.
func StatusIndex(status string) int {
	status = strings.ToUpper(status)
	for i, s := range models.OrderStatusFlow {
		if s == status {
			return i
		}
	}
	return -1
}

// ProgressFraction maps the status enum onto the progress bar: 0.25 for
// CONFIRMED through 1.0 for DELIVERED. An unrecognized status renders as
// zero progress rather than crashing the view.
func ProgressFraction(order models.Order) float64 {
	idx := StatusIndex(order.Status)
	if idx < 0 {
		return 0
	}
	return float64(idx+1) / float64(len(models.OrderStatusFlow))
}

// Delivered reports whether the order reached the final server-side status.
func Delivered(order models.Order) bool {
	return strings.ToUpper(order.Status) == models.StatusDelivered
}

// Acknowledge records that the customer dismissed the delivered notice. For
// any other status it is a no-op: the flag is only meaningful at DELIVERED.
func (v *View) Acknowledge(ctx context.Context, order models.Order) error {
	if !Delivered(order) {
		return nil
	}
	return v.acks.Acknowledge(ctx, order.OrderID)
}

// Reset clears the acknowledged flag, used when the customer starts a new
// order from the terminal panel.
func (v *View) Reset(ctx context.Context, orderID int) {
	v.acks.ClearAcknowledged(ctx, orderID)
}

// State is the render projection for the tracking page. It is derived purely
// from (server status, local flag), so reloading the page is idempotent.
type State struct {
	Order       models.Order `json:"order"`
	StatusIndex int          `json:"statusIndex"`
	Progress    float64      `json:"progress"`
	Delivered   bool         `json:"delivered"`
	// Acknowledged is forced false unless the order is DELIVERED.
	Acknowledged bool `json:"acknowledged"`
	// Terminal unlocks "place another order" instead of "return to menu".
	Terminal bool     `json:"terminal"`
	Flow     []string `json:"flow"`
}

// Project derives the display state for one loaded order.
func (v *View) Project(ctx context.Context, order models.Order) State {
	delivered := Delivered(order)
	acked := delivered && v.acks.Acknowledged(ctx, order.OrderID)
	return State{
		Order:        order,
		StatusIndex:  StatusIndex(order.Status),
		Progress:     ProgressFraction(order),
		Delivered:    delivered,
		Acknowledged: acked,
		Terminal:     delivered && acked,
		Flow:         models.OrderStatusFlow,
	}
}
