package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/nikolayk812/autoposter/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartKey = "autoposter_cart_v2"

func TestNewCart(t *testing.T) {
	_, err := repository.NewCart(nil, cartKey, nil)
	require.EqualError(t, err, "slots is nil")

	_, err = repository.NewCart(repository.NewMemorySlots(), "", nil)
	require.EqualError(t, err, "key is empty")
}

func TestCartRepository_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cart domain.Cart
	}{
		{
			name: "empty cart: ok",
			cart: domain.Cart{},
		},
		{
			name: "single line: ok",
			cart: randomCart(1),
		},
		{
			name: "many lines keep order: ok",
			cart: randomCart(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			repo, err := repository.NewCart(repository.NewMemorySlots(), cartKey, nil)
			require.NoError(t, err)

			require.NoError(t, repo.Save(ctx, tt.cart))

			assertCart(t, tt.cart, repo.Load(ctx))
		})
	}
}

func TestCartRepository_Load(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Cart
	}{
		{
			name: "not json: empty",
			raw:  `{{{`,
		},
		{
			name: "object instead of array: empty",
			raw:  `{"key":"a__b"}`,
		},
		{
			name: "null: empty",
			raw:  `null`,
		},
		{
			name: "zero quantity record: dropped",
			raw:  `[{"key":"p__1","productId":"p","size":"1","price":10,"qty":0}]`,
		},
		{
			name: "browser storefront record: ok",
			raw: `[{"key":"metal_uv_poster__60×80","productId":"metal_uv_poster","title":"Постер",` +
				`"size":"60×80","price":9404,"thumb":"a.jpeg","qty":2}]`,
			want: domain.Cart{Lines: []domain.CartLine{{
				Key:       "metal_uv_poster__60×80",
				ProductID: "metal_uv_poster",
				Title:     "Постер",
				Size:      "60×80",
				Price:     decimal.NewFromInt(9404),
				Thumb:     "a.jpeg",
				Quantity:  2,
			}}},
		},
		{
			name: "missing key derived, duplicate and broken records dropped: ok",
			raw: `[{"productId":"p","size":"s","price":"5","qty":1},` +
				`{"key":"p__s","productId":"p","size":"s","price":"7","qty":3},` +
				`{"key":"q__s","productId":"q","size":"s","price":"5","qty":"many"},` +
				`42]`,
			want: domain.Cart{Lines: []domain.CartLine{{
				Key:       "p__s",
				ProductID: "p",
				Size:      "s",
				Price:     decimal.NewFromInt(5),
				Quantity:  1,
			}}},
		},
		{
			name: "stored key ignored: ok",
			raw:  `[{"key":"legacy-1","productId":"p","size":"s","price":5,"qty":2}]`,
			want: domain.Cart{Lines: []domain.CartLine{{
				Key:       "p__s",
				ProductID: "p",
				Size:      "s",
				Price:     decimal.NewFromInt(5),
				Quantity:  2,
			}}},
		},
		{
			name: "same product and size under two keys: first kept",
			raw: `[{"key":"legacy-1","productId":"p","size":"s","price":5,"qty":1},` +
				`{"key":"legacy-2","productId":"p","size":"s","price":5,"qty":4}]`,
			want: domain.Cart{Lines: []domain.CartLine{{
				Key:       "p__s",
				ProductID: "p",
				Size:      "s",
				Price:     decimal.NewFromInt(5),
				Quantity:  1,
			}}},
		},
		{
			name: "zero, negative and fractional prices: dropped",
			raw: `[{"productId":"a","size":"s","price":0,"qty":1},` +
				`{"productId":"b","size":"s","price":-5,"qty":1},` +
				`{"productId":"c","size":"s","price":"9.5","qty":1}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			slots := repository.NewMemorySlots()
			require.NoError(t, slots.Put(ctx, cartKey, []byte(tt.raw)))

			repo, err := repository.NewCart(slots, cartKey, nil)
			require.NoError(t, err)

			assertCart(t, tt.want, repo.Load(ctx))
		})
	}
}

func TestCartRepository_LoadMissingSlot(t *testing.T) {
	repo, err := repository.NewCart(repository.NewMemorySlots(), cartKey, nil)
	require.NoError(t, err)

	cart := repo.Load(t.Context())
	assert.True(t, cart.IsEmpty())
}

type failingSlots struct {
	err error
}

func (s failingSlots) Get(context.Context, string) ([]byte, error) {
	return nil, s.err
}

func (s failingSlots) Put(context.Context, string, []byte) error {
	return s.err
}

func TestCartRepository_StorageFailure(t *testing.T) {
	boom := errors.New(gofakeit.Word())

	repo, err := repository.NewCart(failingSlots{err: boom}, cartKey, nil)
	require.NoError(t, err)

	assert.True(t, repo.Load(t.Context()).IsEmpty())

	err = repo.Save(t.Context(), randomCart(1))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, port.ErrSlotNotFound)
}
