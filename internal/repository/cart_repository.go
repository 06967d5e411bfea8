package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartRepository struct {
	slots  port.SlotStorage
	key    string
	logger *zap.Logger
}

// NewCart stores the whole cart as a JSON array in a single slot.
func NewCart(slots port.SlotStorage, key string, logger *zap.Logger) (port.CartRepository, error) {
	if slots == nil {
		return nil, fmt.Errorf("slots is nil")
	}
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &cartRepository{
		slots:  slots,
		key:    key,
		logger: logger.With(zap.String("slot", key)),
	}, nil
}

// cartRecord is the persisted line shape, shared with carts written by the web storefront.
type cartRecord struct {
	Key       string          `json:"key"`
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Thumb     string          `json:"thumb"`
	Quantity  int             `json:"qty"`
}

func (r *cartRepository) Load(ctx context.Context) domain.Cart {
	raw, err := r.slots.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, port.ErrSlotNotFound) {
			r.logger.Warn("cart slot unreadable, using empty cart", zap.Error(err))
		}
		return domain.Cart{}
	}

	cart, err := decodeCart(raw)
	if err != nil {
		r.logger.Warn("cart slot malformed, using empty cart", zap.Error(err))
		return domain.Cart{}
	}

	return cart
}

func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	if err := r.slots.Put(ctx, r.key, raw); err != nil {
		return fmt.Errorf("slots.Put: %w", err)
	}

	return nil
}

func encodeCart(cart domain.Cart) ([]byte, error) {
	records := make([]cartRecord, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		records = append(records, cartRecord{
			Key:       l.Key,
			ProductID: l.ProductID,
			Title:     l.Title,
			Size:      l.Size,
			Price:     l.Price,
			Thumb:     l.Thumb,
			Quantity:  l.Quantity,
		})
	}

	return json.Marshal(records)
}

// decodeCart accepts only a JSON array. Elements that cannot form a valid line
// are dropped, as are repeats of a product and size already seen.
func decodeCart(raw []byte) (domain.Cart, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var (
		lines = make([]domain.CartLine, 0, len(elems))
		seen  = make(map[string]struct{}, len(elems))
	)

	for _, elem := range elems {
		line, ok := mapRecordToDomain(elem)
		if !ok {
			continue
		}
		if _, dup := seen[line.Key]; dup {
			continue
		}
		seen[line.Key] = struct{}{}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return domain.Cart{}, nil
	}

	return domain.Cart{Lines: lines}, nil
}

func mapRecordToDomain(elem json.RawMessage) (domain.CartLine, bool) {
	var rec cartRecord
	if err := json.Unmarshal(elem, &rec); err != nil {
		return domain.CartLine{}, false
	}
	if rec.Quantity < 1 || rec.ProductID == "" || rec.Size == "" {
		return domain.CartLine{}, false
	}
	if !rec.Price.IsPositive() || !rec.Price.IsInteger() {
		return domain.CartLine{}, false
	}

	// The stored key is not trusted; lines are identified by product and size.
	return domain.CartLine{
		Key:       domain.LineKey(rec.ProductID, rec.Size),
		ProductID: rec.ProductID,
		Title:     rec.Title,
		Size:      rec.Size,
		Price:     rec.Price,
		Thumb:     rec.Thumb,
		Quantity:  rec.Quantity,
	}, true
}
