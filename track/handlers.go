package track

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"warungku/backend"
	"warungku/middleware"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serve order status tracking and the order history page.
type Handlers struct {
	API *backend.Client
}

func NewHandlers(api *backend.Client) *Handlers {
	return &Handlers{API: api}
}

// Status returns the tracking projection for one order. Reloading the page
// re-derives everything from (server status, local flag).
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	v := NewView(h.API, token, s)
	order, err := v.LoadOrder(ctx, orderID)
	switch {
	case err == nil:
	case errors.Is(err, ErrOrderNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Pesanan tidak ditemukan atau Anda tidak memiliki akses")
		return
	case backend.IsAuthFailure(err):
		middleware.ForceLogout(w, r, s)
		return
	default:
		log.Println("Track load error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Gagal memuat detail pesanan. Silakan coba lagi.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, v.Project(ctx, order))
}

// Acknowledge marks a delivered order as seen. For any other status it
// changes nothing and still answers with the current projection.
func (h *Handlers) Acknowledge(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	v := NewView(h.API, token, s)
	order, err := v.LoadOrder(ctx, orderID)
	switch {
	case err == nil:
	case errors.Is(err, ErrOrderNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Pesanan tidak ditemukan")
		return
	case backend.IsAuthFailure(err):
		middleware.ForceLogout(w, r, s)
		return
	default:
		log.Println("Track acknowledge load error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Gagal memuat detail pesanan")
		return
	}

	if err := v.Acknowledge(ctx, order); err != nil {
		log.Println("Track acknowledge store error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menyimpan status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, v.Project(ctx, order))
}

// Reorder clears the acknowledged flag and points the customer back at the
// catalog — the "place another order" action on the terminal panel.
func (h *Handlers) Reorder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	v := NewView(h.API, token, s)
	v.Reset(ctx, orderID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"redirect": "/catalog"})
}

type orderSummary struct {
	OrderID     int    `json:"orderId"`
	Status      string `json:"status"`
	QueueNumber int    `json:"queueNumber"`
	TotalPrice  int    `json:"totalPrice"`
}

// History lists the caller's orders newest-first for the history page.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orders, err := h.API.MyOrders(ctx, token)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Track history error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Gagal memuat riwayat pesanan")
		return
	}

	summaries := make([]orderSummary, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		summaries = append(summaries, orderSummary{
			OrderID:     o.OrderID,
			Status:      o.Status,
			QueueNumber: o.QueueNumber,
			TotalPrice:  o.TotalPrice,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, summaries)
}
