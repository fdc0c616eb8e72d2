package cart

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Store is the single source of truth for the shopping cart. It is built once
// at the application root and handed to whatever needs it.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
	timeout   time.Duration
	logger    *slog.Logger

	obsMu     sync.Mutex
	nextID    int
	observers map[int]func(State)
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSaveTimeout bounds each persistence write.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// NewStore restores items from p (when non-nil). A missing or unreadable blob
// yields an empty cart. The drawer always starts closed.
func NewStore(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		state:     State{Items: []LineItem{}},
		persister: p,
		timeout:   2 * time.Second,
		logger:    slog.Default(),
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if p == nil {
		return s
	}
	snap, err := p.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
	case err != nil:
		s.logger.WarnContext(ctx, "cart restore failed, starting empty", "error", err)
	default:
		s.state.Items = normalize(snap.Items)
	}
	return s
}

// Subscribe registers fn to receive the state after every dispatch.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// Dispatch applies actions in order as one atomic step, persists the items if
// they changed and then notifies observers once.
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	before := s.state
	next := before
	for _, a := range actions {
		next = a.Reduce(next)
	}
	s.state = next
	itemsChanged := !slices.Equal(before.Items, next.Items)
	if itemsChanged {
		s.save(next.Items)
	}
	snapshot := next.clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot
}

// save runs under s.mu so writes reach the backend in mutation order.
// Failures are logged and otherwise ignored.
func (s *Store) save(items []LineItem) {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.persister.Save(ctx, Snapshot{Items: items}); err != nil {
		s.logger.Warn("cart persist failed", "error", err)
	}
}

func (s *Store) notify(st State) {
	s.obsMu.Lock()
	fns := make([]func(State), 0, len(s.observers))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// AddItem puts one unit of item in the cart and opens the drawer.
func (s *Store) AddItem(item Item) {
	s.Dispatch(Add{Item: item}, SetOpen{Open: true})
}

func (s *Store) RemoveItem(productID int64) {
	s.Dispatch(Remove{ProductID: productID})
}

func (s *Store) UpdateQuantity(productID int64, quantity int) {
	s.Dispatch(SetQuantity{ProductID: productID, Quantity: quantity})
}

func (s *Store) ClearCart() {
	s.Dispatch(Clear{})
}

func (s *Store) SetIsOpen(open bool) {
	s.Dispatch(SetOpen{Open: open})
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) Items() []LineItem {
	return s.State().Items
}

func (s *Store) IsOpen() bool {
	return s.State().IsOpen
}

func (s *Store) CartTotal() decimal.Decimal {
	return Total(s.Items())
}

func (s *Store) CartCount() int {
	return Count(s.Items())
}
