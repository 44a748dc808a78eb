package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tradepost/internal/auth"
	"tradepost/internal/platform/metrics"
	"tradepost/internal/service"
)

type Handler struct {
	router   *chi.Mux
	log      *zap.SugaredLogger
	sessions *auth.Sessions
	accounts *service.AccountService
	listings *service.ListingService
	cart     *service.CartService
	stats    *service.StatsService
}

func NewHandler(
	log *zap.SugaredLogger,
	sessions *auth.Sessions,
	accounts *service.AccountService,
	listings *service.ListingService,
	cart *service.CartService,
	stats *service.StatsService,
	m *metrics.Metrics,
) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(log))
	if m != nil {
		router.Use(requestMetrics(m))
	}
	router.Use(Compress)
	if m != nil {
		router.Handle("/metrics", m.Handler())
	}

	h := &Handler{
		router:   router,
		log:      log,
		sessions: sessions,
		accounts: accounts,
		listings: listings,
		cart:     cart,
		stats:    stats,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Get("/categories", h.ListCategories)
		r.Get("/stats", h.GetStats)

		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Get("/products", h.SearchProducts)
		r.Get("/products/{id}", h.GetProduct)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(h.sessions.Middleware)

			r.Get("/me", h.GetProfile)
			r.Put("/me", h.UpdateProfile)

			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Get("/my/products", h.MyProducts)

			r.Get("/cart", h.GetCart)
			r.Post("/cart/{id}", h.AddToCart)
			r.Delete("/cart/{index}", h.RemoveFromCart)
			r.Post("/purchase", h.Purchase)
			r.Get("/purchases", h.GetPurchases)
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func requestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
			m.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
