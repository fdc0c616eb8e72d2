package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/frocone/internal/domain"
)

type ContentStore interface {
	ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error)
	ListBlogs(ctx context.Context) ([]*domain.Blog, error)
	CreateBlog(ctx context.Context, req domain.CreateBlogRequest) (*domain.Blog, error)
	ListFaqs(ctx context.Context) ([]*domain.Faq, error)
	CreateFaq(ctx context.Context, req domain.CreateFaqRequest) (*domain.Faq, error)
	ListFests(ctx context.Context) ([]*domain.Fest, error)
	CreateFest(ctx context.Context, req domain.CreateFestRequest) (*domain.Fest, error)
}

type ContentHandler struct {
	store   ContentStore
	timeout time.Duration
}

func NewContentHandler(store ContentStore, timeout time.Duration) *ContentHandler {
	return &ContentHandler{
		store:   store,
		timeout: timeout,
	}
}

func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.timeout, h.store.ListTestimonials, "Failed to fetch testimonials")
}

func (h *ContentHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.timeout, h.store.ListBlogs, "Failed to fetch blogs")
}

func (h *ContentHandler) ListFaqs(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.timeout, h.store.ListFaqs, "Failed to fetch FAQs")
}

func (h *ContentHandler) ListFests(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.timeout, h.store.ListFests, "Failed to fetch fests")
}

func (h *ContentHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	serveCreate(w, r, h.timeout, h.store.CreateBlog, "Failed to create blog")
}

func (h *ContentHandler) CreateFaq(w http.ResponseWriter, r *http.Request) {
	serveCreate(w, r, h.timeout, h.store.CreateFaq, "Failed to create FAQ")
}

func (h *ContentHandler) CreateFest(w http.ResponseWriter, r *http.Request) {
	serveCreate(w, r, h.timeout, h.store.CreateFest, "Failed to create fest")
}

func serveList[T any](w http.ResponseWriter, r *http.Request, timeout time.Duration,
	list func(context.Context) ([]T, error), failure string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	items, err := list(ctx)
	if err != nil {
		slog.ErrorContext(ctx, failure, "error", err)
		respondMessage(w, http.StatusInternalServerError, failure)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type validator interface {
	Validate() error
}

func serveCreate[Req any, PReq interface {
	*Req
	validator
}, T any](w http.ResponseWriter, r *http.Request, timeout time.Duration,
	create func(context.Context, Req) (T, error), failure string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	var req Req
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := PReq(&req).Validate(); err != nil {
		respondValidation(w, err)
		return
	}

	created, err := create(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, failure, "error", err)
		respondMessage(w, http.StatusInternalServerError, failure)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
