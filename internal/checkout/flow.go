package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fjod/frocone/internal/cart"
	"github.com/fjod/frocone/internal/domain"
)

type Phase int

const (
	PhaseBrowsing Phase = iota
	PhaseCollectingDetails
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseBrowsing:
		return "BROWSING"
	case PhaseCollectingDetails:
		return "COLLECTING_DETAILS"
	case PhaseSubmitting:
		return "SUBMITTING"
	case PhaseSucceeded:
		return "SUCCEEDED"
	case PhaseFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

const (
	SuccessMessage = "Order placed successfully! We'll contact you soon."
	FailureMessage = "Failed to place order. Please try again."
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrIllegalTransition = errors.New("illegal transition of checkout phase")
)

// OrderCreator is the order-creation collaborator. A rejected payload must be
// reported as *domain.ValidationError.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
}

type NoticeKind string

const (
	NoticeSuccess    NoticeKind = "success"
	NoticeValidation NoticeKind = "validation"
	NoticeFailure    NoticeKind = "failure"
)

type Notice struct {
	Kind    NoticeKind
	Message string
	Field   string
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Flow drives one checkout at a time over a cart store. Form values survive
// failed submissions so the user can correct them and retry.
type Flow struct {
	mu       sync.Mutex
	store    *cart.Store
	orders   OrderCreator
	notifier Notifier
	logger   *slog.Logger

	phase   Phase
	details Details
	lastErr error
}

func NewFlow(store *cart.Store, orders OrderCreator, notifier Notifier) *Flow {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	return &Flow{
		store:    store,
		orders:   orders,
		notifier: notifier,
		logger:   slog.Default(),
		phase:    PhaseBrowsing,
		details:  NewDetails(),
	}
}

func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *Flow) Details() Details {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details
}

// LastError is the error of the most recent failed submission, if any.
func (f *Flow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Begin moves from browsing to the details form. It needs a non-empty cart.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.phase {
	case PhaseCollectingDetails, PhaseFailed:
		return nil
	case PhaseBrowsing, PhaseSucceeded:
	default:
		return fmt.Errorf("%w: begin from %s", ErrIllegalTransition, f.phase)
	}
	if len(f.store.Items()) == 0 {
		return ErrEmptyCart
	}
	if f.phase == PhaseSucceeded {
		f.details = NewDetails()
	}
	f.phase = PhaseCollectingDetails
	f.lastErr = nil
	return nil
}

// SetDetails replaces the form values. After a failure it returns the flow to
// the form.
func (f *Flow) SetDetails(d Details) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseCollectingDetails && f.phase != PhaseFailed {
		return fmt.Errorf("%w: edit details in %s", ErrIllegalTransition, f.phase)
	}
	if d.Type == "" {
		d.Type = domain.OrderTypeTakeaway
	}
	f.details = d
	f.phase = PhaseCollectingDetails
	return nil
}

// Cancel leaves the form and keeps the entered values.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase == PhaseSubmitting {
		return fmt.Errorf("%w: cancel while submitting", ErrIllegalTransition)
	}
	f.phase = PhaseBrowsing
	return nil
}

// Submit sends the current cart with the entered details. On success the cart
// is cleared and the drawer closed. Every failure is turned into a notice and
// also returned; cart and form are left untouched.
func (f *Flow) Submit(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	if f.phase != PhaseCollectingDetails && f.phase != PhaseFailed {
		phase := f.phase
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: submit from %s", ErrIllegalTransition, phase)
	}
	details := f.details
	items := f.store.Items()
	if len(items) == 0 {
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if err := details.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	req, err := BuildOrderRequest(details, items)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.phase = PhaseSubmitting
	f.mu.Unlock()

	order, err := f.orders.CreateOrder(ctx, req)

	f.mu.Lock()
	if err != nil {
		f.phase = PhaseFailed
		f.lastErr = err
		f.mu.Unlock()
		f.notifier.Notify(failureNotice(err))
		f.logger.WarnContext(ctx, "checkout failed", "error", err)
		return nil, err
	}
	f.phase = PhaseSucceeded
	f.lastErr = nil
	f.mu.Unlock()

	f.store.Dispatch(cart.Clear{}, cart.SetOpen{Open: false})
	f.notifier.Notify(Notice{Kind: NoticeSuccess, Message: SuccessMessage})
	f.logger.InfoContext(ctx, "order placed", "order_id", order.ID, "total", req.TotalAmount)
	return order, nil
}

func failureNotice(err error) Notice {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return Notice{Kind: NoticeValidation, Message: verr.Message, Field: verr.Field}
	}
	return Notice{Kind: NoticeFailure, Message: FailureMessage}
}
