package format_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/format"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestMoney_Amount(t *testing.T) {
	f := format.NewMoney(language.AmericanEnglish, currency.USD)

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{
			name:   "zero",
			amount: decimal.Zero,
			want:   "0\u00a0$",
		},
		{
			name:   "grouped thousands",
			amount: decimal.NewFromInt(1234567),
			want:   "1,234,567\u00a0$",
		},
		{
			name:   "fraction rounded away",
			amount: decimal.RequireFromString("9404.6"),
			want:   "9,405\u00a0$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Amount(tt.amount))
		})
	}
}

func TestMoney_Russian(t *testing.T) {
	f, err := format.ParseMoney("ru-RU", "RUB")
	require.NoError(t, err)

	got := f.Amount(decimal.NewFromInt(21950))

	assert.Equal(t, "21950", digits(got))
	assert.True(t, strings.HasSuffix(got, "₽"), got)
	assert.NotContains(t, got, ",")
	assert.Equal(t, currency.RUB, f.Unit())
}

func TestMoney_RussianExact(t *testing.T) {
	f, err := format.ParseMoney("ru-RU", "RUB")
	require.NoError(t, err)

	assert.Equal(t, "9\u00a0404\u00a0₽", f.Amount(decimal.NewFromInt(9404)))
	assert.Equal(t, "21\u00a0950\u00a0₽", f.Amount(decimal.NewFromInt(21950)))
}

func TestMoney_ForeignCurrency(t *testing.T) {
	f := format.NewMoney(language.AmericanEnglish, currency.USD)

	got := f.Money(domain.NewMoney(decimal.NewFromInt(12110), currency.EUR))
	assert.Equal(t, "12,110\u00a0€", got)
}

func TestParseMoney(t *testing.T) {
	_, err := format.ParseMoney("not a locale!", "RUB")
	require.ErrorContains(t, err, "locale[not a locale!] is not valid")

	_, err = format.ParseMoney("ru-RU", "XXXX")
	require.ErrorContains(t, err, "currency[XXXX] is not valid")
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
