package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"warungku/backend"
	"warungku/middleware"
	"warungku/models"
	"warungku/session"
	"warungku/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers proxy authentication to the backend. The gateway never sees a
// stored password; it forwards the login call, keeps the returned bearer
// token in the session store, and hands the browser a signed session cookie.
type Handlers struct {
	API      *backend.Client
	Sessions *session.Manager
}

func NewHandlers(api *backend.Client, sessions *session.Manager) *Handlers {
	return &Handlers{API: api, Sessions: sessions}
}

// Login exchanges credentials for a backend token and opens a session. The
// redirect_to parameter is echoed back so the page can return the user to
// their original target.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.API.Login(ctx, req.Username, req.Password)
	if err != nil {
		if backend.IsStatus(err, http.StatusUnauthorized) || backend.IsStatus(err, http.StatusForbidden) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Username atau password salah")
			return
		}
		log.Println("Login error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Login gagal. Silakan coba lagi.")
		return
	}

	me, err := h.API.Me(ctx, token)
	if err != nil {
		log.Println("Login role check error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Login gagal. Silakan coba lagi.")
		return
	}

	s, err := h.Sessions.Issue(ctx, w, me.Username, me.Role, token)
	if err != nil {
		log.Println("Login session issue error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login gagal")
		return
	}

	redirect := r.URL.Query().Get("redirect_to")
	if redirect == "" {
		redirect = "/catalog"
		if s.IsAdmin() {
			redirect = "/admin/orders"
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"username": me.Username,
		"role":     me.Role,
		"redirect": redirect,
	})
}

// Register proxies signup to the backend. Every field is required; a taken
// username surfaces as 409 so the form can point at the username field.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req models.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Username == "" || req.Password == "" || req.Name == "" || req.NoTelp == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Semua field wajib diisi.")
		return
	}

	if err := h.API.Register(ctx, req); err != nil {
		if backend.IsStatus(err, http.StatusConflict) {
			utils.RespondWithError(w, http.StatusConflict, "Username sudah digunakan")
			return
		}
		log.Println("Register error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Registrasi gagal. Silakan coba lagi.")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":  "Registrasi berhasil! Silakan login.",
		"redirect": "/login",
	})
}

// Logout drops the credential and any guest-cart remnants and expires the
// cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s, _ := h.Sessions.FromRequest(r)
	h.Sessions.Destroy(r.Context(), w, s)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"redirect": "/login"})
}

// Me confirms the session against the backend, surfacing role for the pages.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	s, _ := middleware.SessionFrom(ctx)
	token, _ := s.Credential(ctx)

	me, err := h.API.Me(ctx, token)
	if err != nil {
		if backend.IsAuthFailure(err) {
			middleware.ForceLogout(w, r, s)
			return
		}
		log.Println("Me error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to load profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, me)
}
