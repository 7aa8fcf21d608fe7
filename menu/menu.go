package menu

import (
	"encoding/json"
	"log"
	"net/http"

	"warungku/backend"
	"warungku/cart"
	"warungku/middleware"
	"warungku/models"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serve the customer catalog: public menu browsing merged with the
// caller's cart quantities. Mutations from this surface patch the local
// mirror optimistically after a successful write, unlike the cart page.
type Handlers struct {
	API *backend.Client
}

func NewHandlers(api *backend.Client) *Handlers {
	return &Handlers{API: api}
}

type catalogResponse struct {
	Items      []models.MenuItem `json:"items"`
	Categories []string          `json:"categories"`
	Quantities map[int]int       `json:"quantities"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int               `json:"totalPrice"`
	LoggedIn   bool              `json:"loggedIn"`
}

// Catalog lists the menu, optionally filtered by category, and merges in the
// viewer's quantity mirror when a session exists. The price table for the
// running total always comes from the unfiltered menu, fetched fresh.
func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	items, err := h.API.Menu(ctx, category)
	if err != nil {
		log.Println("Catalog menu fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch menu")
		return
	}

	resp := catalogResponse{
		Items:      items,
		Categories: models.Categories,
		Quantities: map[int]int{},
	}

	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, resp)
		return
	}
	token, ok := s.Credential(ctx)
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, resp)
		return
	}
	resp.LoggedIn = true

	co := cart.New(h.API, token, cart.OptimisticLocalPatch)
	if err := co.Fetch(ctx); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Catalog cart fetch error:", err)
		utils.RespondWithJSON(w, http.StatusOK, resp)
		return
	}

	// Full menu price table, separate from the filtered display list.
	priceItems := items
	if category != "" {
		if priceItems, err = h.API.Menu(ctx, ""); err != nil {
			log.Println("Catalog price table fetch error:", err)
			priceItems = items
		}
	}

	for _, ln := range co.Lines() {
		resp.Quantities[ln.MenuID] = ln.Quantity
	}
	resp.TotalItems = co.TotalItems()
	resp.TotalPrice = co.TotalPrice(cart.PriceTable(priceItems))

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

type lineRequest struct {
	MenuID   int `json:"menuId"`
	Quantity int `json:"quantity"`
}

// SetLine applies a catalog increment or decrement. On success the response
// echoes the patched line so the page updates its counts without a re-fetch;
// this optimistic path is specific to catalog browsing.
func (h *Handlers) SetLine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	co := cart.New(h.API, token, cart.OptimisticLocalPatch)
	if err := co.SetQuantity(ctx, req.MenuID, req.Quantity); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("SetLine error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to update cart")
		return
	}

	removed := req.Quantity <= 0
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"menuId":   req.MenuID,
		"quantity": co.Quantity(req.MenuID),
		"removed":  removed,
	})
}
