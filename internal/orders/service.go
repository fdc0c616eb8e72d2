package orders

import (
	"context"
	"log/slog"

	"github.com/fjod/frocone/internal/domain"
)

type Service struct {
	repo   RepoInterface
	logger *slog.Logger
}

func NewService(repo RepoInterface, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// PlaceOrder validates the request and stores it with status "pending". A
// rejected payload comes back as *domain.ValidationError.
func (s *Service) PlaceOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.repo.CreateOrder(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "create order failed", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"order_type", order.OrderType,
		"total", order.TotalAmount)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}
