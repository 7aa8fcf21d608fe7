package cart

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"warungku/backend"
	"warungku/middleware"
	"warungku/models"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serve the cart page. Every mutation here re-fetches the
// authoritative cart after the write resolves instead of trusting a local
// patch — the conservative counterpart to the catalog surface.
type Handlers struct {
	API *backend.Client
}

func NewHandlers(api *backend.Client) *Handlers {
	return &Handlers{API: api}
}

type cartResponse struct {
	Lines      []models.CartLine `json:"lines"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int               `json:"totalPrice"`
}

func (h *Handlers) respondCart(w http.ResponseWriter, co *Coordinator) {
	lines := co.Lines()
	// Cart lines carry backend unit prices, so the price table comes from
	// the lines themselves here.
	prices := make(map[int]int, len(lines))
	for _, ln := range lines {
		prices[ln.MenuID] = ln.Price
	}
	utils.RespondWithJSON(w, http.StatusOK, cartResponse{
		Lines:      lines,
		TotalItems: co.TotalItems(),
		TotalPrice: co.TotalPrice(prices),
	})
}

// Get returns the authoritative cart, replacing whatever the page thought it
// had.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	co := New(h.API, token, AuthoritativeRefetch)
	if err := co.Fetch(ctx); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Cart fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to load cart")
		return
	}
	h.respondCart(w, co)
}

// SetLine changes one quantity from the cart page or detail modal, then
// responds with the re-fetched cart.
func (h *Handlers) SetLine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	var req struct {
		MenuID   int `json:"menuId"`
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	co := New(h.API, token, AuthoritativeRefetch)
	if err := co.SetQuantity(ctx, req.MenuID, req.Quantity); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Cart SetLine error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to update cart")
		return
	}
	h.respondCart(w, co)
}

// RemoveLine deletes one line, then responds with the re-fetched cart.
func (h *Handlers) RemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	menuID, err := strconv.Atoi(ps.ByName("menuId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid menu id")
		return
	}

	co := New(h.API, token, AuthoritativeRefetch)
	if err := co.Remove(ctx, menuID); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Cart RemoveLine error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to remove item")
		return
	}
	if err := co.Fetch(ctx); err != nil {
		log.Println("Cart refetch after remove error:", err)
	}
	h.respondCart(w, co)
}
