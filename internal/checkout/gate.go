// Package checkout gates submission on the minimum order and hands the
// composed order message to the messaging application.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/format"
	"github.com/nikolayk812/autoposter/internal/order"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultHandoffDelay = 450 * time.Millisecond

	MsgBelowMinimum = "Сумма ниже минимального заказа"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrBelowMinimum = errors.New("below minimum order")
)

type Status int

const (
	StatusEmpty Status = iota
	StatusBelowMinimum
	StatusAllowed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusBelowMinimum:
		return "below_minimum"
	case StatusAllowed:
		return "allowed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Decision is the outcome of CanCheckout. Reason is only set below the minimum.
type Decision struct {
	Status Status
	Reason string
}

func (d Decision) Allowed() bool {
	return d.Status == StatusAllowed
}

type Gate struct {
	catalog   domain.Catalog
	composer  *order.Composer
	money     format.Money
	launcher  port.Launcher
	recipient string

	delay    time.Duration
	notifier port.Notifier
	logger   *zap.Logger
}

type Option func(*Gate)

// WithDelay sets the wait between the deep link and the web fallback.
func WithDelay(d time.Duration) Option {
	return func(g *Gate) {
		g.delay = d
	}
}

func WithNotifier(n port.Notifier) Option {
	return func(g *Gate) {
		if n != nil {
			g.notifier = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGate(catalog domain.Catalog, composer *order.Composer, money format.Money, launcher port.Launcher, recipient string, opts ...Option) (*Gate, error) {
	if composer == nil {
		return nil, fmt.Errorf("composer is nil")
	}
	if launcher == nil {
		return nil, fmt.Errorf("launcher is nil")
	}
	if recipient == "" {
		return nil, fmt.Errorf("recipient is empty")
	}

	g := &Gate{
		catalog:   catalog,
		composer:  composer,
		money:     money,
		launcher:  launcher,
		recipient: recipient,
		delay:     DefaultHandoffDelay,
		notifier:  port.NotifierFunc(func(context.Context, string) {}),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.delay < 0 {
		return nil, fmt.Errorf("delay is negative")
	}

	return g, nil
}

// MinimumOrder is the threshold Submit checks against.
func (g *Gate) MinimumOrder() decimal.Decimal {
	return g.catalog.MinimumOrder()
}

// CanCheckout allows a non-empty cart whose total reaches minimum. A total
// equal to minimum is allowed.
func (g *Gate) CanCheckout(cart domain.Cart, minimum decimal.Decimal) Decision {
	if cart.IsEmpty() {
		return Decision{Status: StatusEmpty}
	}

	if cart.Total().LessThan(minimum) {
		return Decision{
			Status: StatusBelowMinimum,
			Reason: fmt.Sprintf("Минимальный заказ — %s. Выберите другой размер или добавьте ещё один постер.",
				g.money.Money(domain.NewMoney(minimum, g.catalog.Currency))),
		}
	}

	return Decision{Status: StatusAllowed}
}

// Receipt describes a submission that passed the gate.
type Receipt struct {
	ID      uuid.UUID
	Message string
	Links   Links

	done chan struct{}
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Done is closed once the web fallback has been attempted. On a zero Receipt
// it is already closed.
func (r Receipt) Done() <-chan struct{} {
	if r.done == nil {
		return closedDone
	}
	return r.done
}

func (r Receipt) Wait() {
	<-r.Done()
}

// Submit re-validates the cart, composes the order message and fires both
// links: the deep link now, the web link once the delay has passed since the
// hand-off began, whether or not the first one worked. Neither attempt is retried and neither can be cancelled,
// since the application gives no acknowledgement.
func (g *Gate) Submit(ctx context.Context, cart domain.Cart, oc domain.OrderContext) (Receipt, error) {
	decision := g.CanCheckout(cart, g.MinimumOrder())

	switch decision.Status {
	case StatusEmpty:
		return Receipt{}, ErrEmptyCart
	case StatusBelowMinimum:
		g.notifier.Notify(ctx, MsgBelowMinimum)
		return Receipt{}, fmt.Errorf("%w: %s", ErrBelowMinimum, decision.Reason)
	}

	msg := g.composer.Compose(cart, oc)

	r := Receipt{
		ID:      uuid.New(),
		Message: msg,
		Links:   NewLinks(g.recipient, msg),
		done:    make(chan struct{}),
	}

	logger := g.logger.With(zap.Stringer("submission_id", r.ID))
	logger.Info("order submitted",
		zap.Int("lines", len(cart.Lines)),
		zap.String("total", cart.Total().String()),
		zap.String("region", string(oc.Region)))

	handoffCtx := context.WithoutCancel(ctx)
	deepDone := make(chan struct{})

	time.AfterFunc(g.delay, func() {
		defer close(r.done)
		// launchers are not required to be safe for concurrent use
		<-deepDone
		g.open(handoffCtx, logger, "web", r.Links.Web)
	})

	g.open(handoffCtx, logger, "deep", r.Links.Deep)
	close(deepDone)

	return r, nil
}

func (g *Gate) open(ctx context.Context, logger *zap.Logger, scheme, url string) {
	if err := g.launcher.Open(ctx, url); err != nil {
		logger.Warn("handoff attempt failed", zap.String("scheme", scheme), zap.Error(err))
		return
	}

	logger.Debug("handoff attempted", zap.String("scheme", scheme))
}
