package routes

import (
	"net/http"

	"warungku/admin"
	"warungku/auth"
	"warungku/cart"
	"warungku/checkout"
	"warungku/menu"
	"warungku/middleware"
	"warungku/ratelim"
	"warungku/track"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", http.Dir("static"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handlers, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/login", rl.Limit(h.Login))
	router.POST("/api/register", rl.Limit(h.Register))
	router.POST("/api/logout", h.Logout)
	router.GET("/api/me", mw.RequireSession(h.Me))
}

func AddCatalogRoutes(router *httprouter.Router, h *menu.Handlers, mw *middleware.Auth) {
	router.GET("/api/catalog", mw.OptionalSession(h.Catalog))
	router.POST("/api/catalog/line", mw.RequireSession(h.SetLine))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers, mw *middleware.Auth) {
	router.GET("/api/cart", mw.RequireSession(h.Get))
	router.POST("/api/cart/line", mw.RequireSession(h.SetLine))
	router.DELETE("/api/cart/line/:menuId", mw.RequireSession(h.RemoveLine))
}

func AddCheckoutRoutes(router *httprouter.Router, h *checkout.Handlers, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout", rl.Limit(mw.RequireSession(h.Submit)))
}

func AddTrackingRoutes(router *httprouter.Router, h *track.Handlers, mw *middleware.Auth) {
	router.GET("/api/orders", mw.RequireSession(h.History))
	router.GET("/api/track/:orderId", mw.RequireSession(h.Status))
	router.POST("/api/track/:orderId/ack", mw.RequireSession(h.Acknowledge))
	router.POST("/api/track/:orderId/reorder", mw.RequireSession(h.Reorder))
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handlers, mw *middleware.Auth) {
	router.GET("/api/admin/dashboard", mw.RequireAdmin(h.Dashboard))

	router.GET("/api/admin/menu", mw.RequireAdmin(h.ListMenu))
	router.POST("/api/admin/menu", mw.RequireAdmin(h.CreateMenu))
	router.PUT("/api/admin/menu/:menuId", mw.RequireAdmin(h.UpdateMenu))
	router.DELETE("/api/admin/menu/:menuId", mw.RequireAdmin(h.DeleteMenu))

	router.GET("/api/admin/orders", mw.RequireAdmin(h.ListOrders))
	router.PUT("/api/admin/orders/:orderId/status", mw.RequireAdmin(h.UpdateOrderStatus))
	router.GET("/api/admin/orders/report", mw.RequireAdmin(h.OrderReport))
	router.GET("/api/admin/tables/qr", mw.RequireAdmin(h.TableQRSheet))
}
