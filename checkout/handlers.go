package checkout

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"warungku/backend"
	"warungku/cart"
	"warungku/middleware"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers expose the checkout flow. The success response tells the page how
// long to show the confirmation panel and where to navigate afterwards; the
// browser owns the actual timer.
type Handlers struct {
	API *backend.Client
}

func NewHandlers(api *backend.Client) *Handlers {
	return &Handlers{API: api}
}

// nopScheduler never runs the delayed step. The browser owns the
// success-panel timer on this path, so arming a server-side one would only
// mean disarming it again.
type nopScheduler struct{}

func (nopScheduler) AfterFunc(time.Duration, func()) func() {
	return func() {}
}

// Submit validates and places the order. On success the cart mirror is
// already cleared; retrying after a failure reuses the untouched cart.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	var req struct {
		TableNumber string `json:"tableNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	co := cart.New(h.API, token, cart.AuthoritativeRefetch)
	if err := co.Fetch(ctx); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Checkout cart fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to load cart")
		return
	}

	flow := NewFlow(h.API, token, co, nopScheduler{}, nil)
	order, err := flow.Submit(ctx, req.TableNumber)
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyCart):
		utils.RespondWithError(w, http.StatusBadRequest, "Keranjang Anda kosong")
		return
	case errors.Is(err, ErrNoTable), errors.Is(err, ErrInvalidTable):
		utils.RespondWithError(w, http.StatusBadRequest, "Harap masukkan Nomor Meja")
		return
	case backend.IsAuthFailure(err):
		middleware.ForceLogout(w, r, s)
		return
	default:
		log.Println("Checkout error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Gagal membuat pesanan. Silakan coba lagi.")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"orderId":       order.OrderID,
		"queueNumber":   order.QueueNumber,
		"paymentStatus": order.PaymentStatus,
		"totalPrice":    order.TotalPrice,
		"redirect":      TrackPath(order.OrderID),
		"redirectAfter": SuccessDelay.Milliseconds(),
	})
}
