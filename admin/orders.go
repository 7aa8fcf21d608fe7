package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"warungku/backend"
	"warungku/middleware"
	"warungku/models"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// ListOrders returns every order for the kitchen dashboard.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orders, err := h.API.AllOrders(ctx, token)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Admin ListOrders error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus advances one order along the fixed flow. The backend
// receives the new status as a raw JSON string literal, matching its
// contract.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !slices.Contains(models.OrderStatusFlow, status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status: "+status)
		return
	}

	if err := h.API.UpdateOrderStatus(ctx, token, orderID, status); err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		if backend.IsStatus(err, http.StatusNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("Admin UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to update order status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orderId": orderID, "status": status})
}
