package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"warungku/backend"
	"warungku/cart"
	"warungku/models"
)

// SuccessDelay is how long the success panel stays up before the customer is
// taken to status tracking. Matches the original storefront timing.
const SuccessDelay = 3500 * time.Millisecond

var (
	ErrEmptyCart    = errors.New("checkout: cart is empty")
	ErrNoTable      = errors.New("checkout: table number required")
	ErrInvalidTable = errors.New("checkout: table number must be numeric")
	ErrSubmitting   = errors.New("checkout: submission already in progress")
)

// Scheduler runs fn once after d. The returned cancel stops a pending run.
// Tests substitute a manual implementation and advance virtual time instead
// of sleeping.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Navigator receives the post-success destination. May be nil when the
// transport layer delivers the redirect to the browser itself.
type Navigator interface {
	Push(path string)
}

// Flow drives one checkout: validate, submit, flip into the success display
// state, clear the mirror, then navigate after the fixed delay. There is no
// compensating action once the server acknowledged — the order exists
// regardless of what happens to the navigation step.
type Flow struct {
	api   *backend.Client
	token string
	cart  *cart.Coordinator
	sched Scheduler
	nav   Navigator

	submitting bool
	success    bool
	orderID    int
	cancel     func()
}

func NewFlow(api *backend.Client, token string, c *cart.Coordinator, sched Scheduler, nav Navigator) *Flow {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Flow{api: api, token: token, cart: c, sched: sched, nav: nav}
}

// Submit performs the single checkout call. Preconditions are checked before
// any network traffic: a non-empty cart and a non-blank table number. A
// second submit while one is in flight is rejected by the submitting guard
// only; the backend promises no deduplication.
func (f *Flow) Submit(ctx context.Context, tableNumber string) (models.Order, error) {
	if f.submitting {
		return models.Order{}, ErrSubmitting
	}

	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return models.Order{}, ErrNoTable
	}
	table, err := strconv.Atoi(tableNumber)
	if err != nil {
		return models.Order{}, ErrInvalidTable
	}
	if f.cart.TotalItems() == 0 {
		return models.Order{}, ErrEmptyCart
	}

	f.submitting = true
	order, err := f.api.Checkout(ctx, f.token, table)
	if err != nil {
		// Cart and table input stay as they were so the user can retry.
		f.submitting = false
		return models.Order{}, err
	}

	// Optimistic local clear: the server emptied the cart when it created the
	// order, so the mirror is dropped without a re-fetch.
	f.orderID = order.OrderID
	f.success = true
	f.cart.Clear()

	f.cancel = f.sched.AfterFunc(SuccessDelay, func() {
		f.success = false
		f.submitting = false
		if f.nav != nil {
			f.nav.Push(TrackPath(f.orderID))
		}
	})

	return order, nil
}

// Cancel stops a pending navigation, e.g. when the view goes away.
func (f *Flow) Cancel() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flow) Submitting() bool { return f.submitting }

// ShowingSuccess reports whether the transient success panel is up.
func (f *Flow) ShowingSuccess() bool { return f.success }

func (f *Flow) OrderID() int { return f.orderID }

// TrackPath is the status-tracking destination for a created order.
func TrackPath(orderID int) string {
	return fmt.Sprintf("/track/%d", orderID)
}
