package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/port"
	"go.uber.org/zap"
)

const (
	MsgAdded   = "Добавлено в корзину"
	MsgCleared = "Корзина очищена"
)

// CartService owns the persisted cart. Every mutation is a full
// load, mutate, save cycle followed by a notification to subscribers.
type CartService struct {
	repo     port.CartRepository
	catalog  domain.Catalog
	notifier port.Notifier
	logger   *zap.Logger

	mu        sync.Mutex
	observers []observer
	nextID    int
}

type observer struct {
	id     int
	notify func(domain.Cart)
}

func NewCartService(repo port.CartRepository, catalog domain.Catalog, notifier port.Notifier, logger *zap.Logger) (*CartService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}
	if notifier == nil {
		notifier = port.NotifierFunc(func(context.Context, string) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CartService{
		repo:      repo,
		catalog:   catalog,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

func (s *CartService) Load(ctx context.Context) domain.Cart {
	return s.repo.Load(ctx)
}

// Add puts one unit of productID/size into the cart.
func (s *CartService) Add(ctx context.Context, productID, size string) (domain.Cart, error) {
	product, variant, err := s.catalog.Resolve(productID, size)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("catalog.Resolve: %w", err)
	}

	cart, err := s.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		return cart.Add(product, variant), true
	})
	if err != nil {
		return domain.Cart{}, err
	}

	s.logger.Debug("cart line added",
		zap.String("key", domain.LineKey(productID, size)),
		zap.Int("count", cart.Count()))
	s.notifier.Notify(ctx, MsgAdded)

	return cart, nil
}

// ChangeQuantity applies delta to the keyed line. Unknown keys are a no-op:
// nothing is written and subscribers are not notified.
func (s *CartService) ChangeQuantity(ctx context.Context, key string, delta int) (domain.Cart, error) {
	return s.mutate(ctx, func(cart domain.Cart) (domain.Cart, bool) {
		return cart.ChangeQuantity(key, delta)
	})
}

func (s *CartService) Clear(ctx context.Context) (domain.Cart, error) {
	cart, err := s.mutate(ctx, func(domain.Cart) (domain.Cart, bool) {
		return domain.Cart{}, true
	})
	if err != nil {
		return domain.Cart{}, err
	}

	s.notifier.Notify(ctx, MsgCleared)

	return cart, nil
}

// Subscribe registers fn to receive the cart after every committed mutation.
// Subscribers are notified in the order they subscribed.
func (s *CartService) Subscribe(fn func(domain.Cart)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, notify: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(o observer) bool {
			return o.id == id
		})
	}
}

func (s *CartService) mutate(ctx context.Context, fn func(domain.Cart) (domain.Cart, bool)) (domain.Cart, error) {
	s.mu.Lock()

	cart, changed := fn(s.repo.Load(ctx))
	if !changed {
		s.mu.Unlock()
		return cart, nil
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		s.mu.Unlock()
		return domain.Cart{}, fmt.Errorf("repo.Save: %w", err)
	}

	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.notify(cart)
	}

	return cart, nil
}
