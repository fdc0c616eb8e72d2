package inquiry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fjod/frocone/internal/domain"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	notifier Notifier
	timeout  time.Duration
	logger   *slog.Logger
}

// NewService wires the inquiry service. notifier may be nil when mail is not
// configured.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// Submit validates and stores an inquiry with status "new". Notification
// failures are logged and never fail the submission.
func (s *Service) Submit(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactInquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inq := &domain.ContactInquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		Status:    domain.InquiryStatusNew,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		phone := strings.TrimSpace(*req.Phone)
		inq.Phone = &phone
	}

	if err := s.repo.Create(ctx, inq); err != nil {
		s.logger.ErrorContext(ctx, "store inquiry failed", "error", err)
		return nil, err
	}

	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.notifier.Notify(nctx, inq); err != nil {
			s.logger.WarnContext(ctx, "inquiry notification failed", "inquiry_id", inq.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "inquiry received", "inquiry_id", inq.ID)
	return inq, nil
}
