package admin

import (
	"log"
	"net/http"

	"warungku/backend"
	"warungku/middleware"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Dashboard returns the headline counts for the admin landing page.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	menuCount, err := h.API.MenuCount(ctx, token)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Admin Dashboard menu count error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch dashboard data")
		return
	}

	orderCount, err := h.API.OrderCount(ctx, token)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Admin Dashboard order count error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to fetch dashboard data")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"menuCount":  menuCount,
		"orderCount": orderCount,
	})
}
