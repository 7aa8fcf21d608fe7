package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warungku/admin"
	"warungku/auth"
	"warungku/backend"
	"warungku/cart"
	"warungku/checkout"
	"warungku/kv"
	"warungku/menu"
	"warungku/middleware"
	"warungku/ratelim"
	"warungku/rdx"
	"warungku/routes"
	"warungku/session"
	"warungku/track"
	"warungku/utils"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(api *backend.Client, sessions *session.Manager, rateLimiter *ratelim.RateLimiter, uploadDir, catalogBase string) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	mw := middleware.NewAuth(sessions)

	routes.AddAuthRoutes(router, auth.NewHandlers(api, sessions), mw, rateLimiter)
	routes.AddCatalogRoutes(router, menu.NewHandlers(api), mw)
	routes.AddCartRoutes(router, cart.NewHandlers(api), mw)
	routes.AddCheckoutRoutes(router, checkout.NewHandlers(api), mw, rateLimiter)
	routes.AddTrackingRoutes(router, track.NewHandlers(api), mw)
	routes.AddAdminRoutes(router, admin.NewHandlers(api, uploadDir, catalogBase), mw)
	routes.AddStaticRoutes(router)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8090"
	} else if port[0] != ':' {
		port = ":" + port
	}

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8080"
	}
	catalogBase := os.Getenv("PUBLIC_BASE_URL")
	if catalogBase == "" {
		catalogBase = "http://localhost" + port
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "static/menupic"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET not set; using an ephemeral session secret")
		secret = utils.GenerateRandomString(32)
	}

	// Session buckets live in Redis; fall back to in-process memory for dev
	// runs without one.
	var store kv.Store
	if os.Getenv("REDIS_URL") != "" {
		store = rdx.NewStore(rdx.Connect())
	} else {
		log.Println("REDIS_URL not set; sessions held in process memory")
		store = kv.NewMemory()
	}

	api := backend.New(backendURL)
	sessions := session.NewManager(store, []byte(secret))
	rateLimiter := ratelim.NewRateLimiter()

	router := setupRouter(api, sessions, rateLimiter, uploadDir, catalogBase)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Gateway listening on %s (backend %s)", port, backendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
