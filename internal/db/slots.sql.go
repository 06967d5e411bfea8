package db

import (
	"context"
	"time"
)

const getSlot = `-- name: GetSlot :one
SELECT slot_key, value, updated_at
FROM storage_slots
WHERE slot_key = $1
`

type GetSlotRow struct {
	SlotKey   string
	Value     []byte
	UpdatedAt time.Time
}

func (q *Queries) GetSlot(ctx context.Context, slotKey string) (GetSlotRow, error) {
	row := q.db.QueryRow(ctx, getSlot, slotKey)
	var i GetSlotRow
	err := row.Scan(&i.SlotKey, &i.Value, &i.UpdatedAt)
	return i, err
}

const putSlot = `-- name: PutSlot :exec
INSERT INTO storage_slots (slot_key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (slot_key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`

type PutSlotParams struct {
	SlotKey string
	Value   []byte
}

func (q *Queries) PutSlot(ctx context.Context, arg PutSlotParams) error {
	_, err := q.db.Exec(ctx, putSlot, arg.SlotKey, arg.Value)
	return err
}
