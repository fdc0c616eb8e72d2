package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Products *ProductHandler
	Orders   *OrderHandler
	Contact  *ContactHandler
	Content  *ContentHandler
}

type RouterConfig struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter mounts the storefront API under /api behind the shared
// middleware stack and OpenTelemetry instrumentation.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestIDHeader)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if cfg.MaxBodyBytes > 0 {
		r.Use(MaxBodySize(cfg.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/{id}", h.Products.Get)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.Create)
			r.Get("/{id}", h.Orders.Get)
		})
		r.Post("/contact", h.Contact.Create)

		r.Get("/testimonials", h.Content.ListTestimonials)
		r.Get("/blogs", h.Content.ListBlogs)
		r.Post("/blogs", h.Content.CreateBlog)
		r.Get("/faqs", h.Content.ListFaqs)
		r.Post("/faqs", h.Content.CreateFaq)
		r.Get("/fests", h.Content.ListFests)
		r.Post("/fests", h.Content.CreateFest)
	})

	return otelhttp.NewHandler(r, "storefront")
}
