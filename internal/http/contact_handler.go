package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/frocone/internal/domain"
)

type InquiryService interface {
	Submit(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactInquiry, error)
}

type ContactHandler struct {
	inquiries InquiryService
	timeout   time.Duration
}

func NewContactHandler(inquiries InquiryService, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		inquiries: inquiries,
		timeout:   timeout,
	}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.CreateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inq, err := h.inquiries.Submit(ctx, req)
	if err != nil {
		if respondValidation(w, err) {
			return
		}
		slog.ErrorContext(ctx, "submit inquiry failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	respondJSON(w, http.StatusCreated, inq)
}
