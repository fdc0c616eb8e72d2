package orders

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fjod/frocone/internal/domain"
	"github.com/fjod/frocone/internal/storage"
	"github.com/google/uuid"
)

//go:embed migrations/*.sql
var migrations embed.FS

const EventOrderCreated = "order.created"

var ErrOrderNotFound = errors.New("order not found")

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     json.RawMessage
	CreatedAt   time.Time
}

type RepoInterface interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
}

// OutboxStore is the part of the repository the publisher relies on.
type OutboxStore interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) RunMigrations() error {
	return storage.MigratePostgres(r.db, migrations, "orders_schema_migrations")
}

type orderCreatedPayload struct {
	OrderID      int64            `json:"orderId"`
	CustomerName string           `json:"customerName"`
	OrderType    domain.OrderType `json:"orderType"`
	Items        json.RawMessage  `json:"items"`
	TotalAmount  string           `json:"totalAmount"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// CreateOrder stores the order and its order.created outbox event in one
// transaction.
func (r *Repository) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (customer_name, customer_email, customer_phone, order_type, items, total_amount, special_instructions, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, total_amount::text, created_at`

	order := &domain.Order{
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		OrderType:           req.OrderType,
		Items:               req.Items,
		SpecialInstructions: req.SpecialInstructions,
		Status:              domain.OrderStatusPending,
	}
	err = tx.QueryRowContext(ctx, query,
		req.CustomerName,
		req.CustomerEmail,
		req.CustomerPhone,
		string(req.OrderType),
		req.Items,
		req.TotalAmount,
		req.SpecialInstructions,
		domain.OrderStatusPending,
	).Scan(&order.ID, &order.TotalAmount, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	payload, err := json.Marshal(orderCreatedPayload{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		OrderType:    order.OrderType,
		Items:        json.RawMessage(order.Items),
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal outbox payload: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, aggregate_id, event_type, payload) VALUES ($1, $2, $3, $4)`,
		uuid.New(), strconv.FormatInt(order.ID, 10), EventOrderCreated, payload)
	if err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	return order, nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT id, customer_name, customer_email, customer_phone, order_type, items,
	                 total_amount::text, special_instructions, status, created_at
	          FROM orders WHERE id = $1`

	var (
		order        domain.Order
		orderType    string
		instructions sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&orderType,
		&order.Items,
		&order.TotalAmount,
		&instructions,
		&order.Status,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	order.OrderType = domain.OrderType(orderType)
	if instructions.Valid {
		order.SpecialInstructions = &instructions.String
	}
	return &order, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
	          FROM outbox_events
	          WHERE processed_at IS NULL
	          ORDER BY created_at
	          LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		var payload []byte
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		e.Payload = payload
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox events: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark outbox event %s: %w", id, err)
	}
	return nil
}
