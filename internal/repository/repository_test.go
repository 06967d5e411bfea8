package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../../migrations/01_storage_slots.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// testSlotStorage checks the contract every slot backend shares.
func testSlotStorage(t *testing.T, slots port.SlotStorage) {
	t.Helper()

	tests := []struct {
		name   string
		key    string
		values [][]byte
		want   []byte
	}{
		{
			name:   "single write: ok",
			key:    gofakeit.UUID(),
			values: [][]byte{[]byte(`[]`)},
			want:   []byte(`[]`),
		},
		{
			name:   "last write wins: ok",
			key:    gofakeit.UUID(),
			values: [][]byte{[]byte(`[1]`), []byte(`[1,2]`), []byte(`garbage`)},
			want:   []byte(`garbage`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			for _, v := range tt.values {
				require.NoError(t, slots.Put(ctx, tt.key, v))
			}

			got, err := slots.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing key: not found", func(t *testing.T) {
		_, err := slots.Get(t.Context(), gofakeit.UUID())
		assert.ErrorIs(t, err, port.ErrSlotNotFound)
	})

	t.Run("empty key: error", func(t *testing.T) {
		_, err := slots.Get(t.Context(), "")
		require.EqualError(t, err, "key is empty")

		err = slots.Put(t.Context(), "", []byte(`[]`))
		require.EqualError(t, err, "key is empty")
	})
}

func randomCart(n int) domain.Cart {
	var cart domain.Cart
	for range n {
		productID := gofakeit.UUID()
		size := fmt.Sprintf("%d×%d", gofakeit.Number(10, 200), gofakeit.Number(10, 200))

		cart.Lines = append(cart.Lines, domain.CartLine{
			Key:       domain.LineKey(productID, size),
			ProductID: productID,
			Title:     gofakeit.ProductName(),
			Size:      size,
			Price:     decimal.NewFromFloat(gofakeit.Price(1, 50000)).Round(0),
			Thumb:     gofakeit.URL(),
			Quantity:  gofakeit.Number(1, 20),
		})
	}

	return cart
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, decimalComparer)
	assert.Empty(t, diff)
}
