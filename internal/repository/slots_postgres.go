package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/autoposter/internal/db"
	"github.com/nikolayk812/autoposter/internal/port"
)

type postgresSlots struct {
	q *db.Queries
}

func NewPostgresSlots(pool *pgxpool.Pool) port.SlotStorage {
	return &postgresSlots{
		q: db.New(pool),
	}
}

func NewPostgresSlotsWithTx(tx pgx.Tx) port.SlotStorage {
	return &postgresSlots{
		q: db.New(tx),
	}
}

func (s *postgresSlots) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	row, err := s.q.GetSlot(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetSlot: %w", err)
	}

	return row.Value, nil
}

func (s *postgresSlots) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	err := s.q.PutSlot(ctx, db.PutSlotParams{
		SlotKey: key,
		Value:   value,
	})
	if err != nil {
		return fmt.Errorf("q.PutSlot: %w", err)
	}

	return nil
}
