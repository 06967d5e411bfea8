package format

import (
	"fmt"

	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nbsp = "\u00a0"

// Money renders whole currency amounts the way a storefront shows prices:
// locale digit grouping, no fraction digits, symbol after the number
// ("21 950 ₽" for ru-RU).
type Money struct {
	tag     language.Tag
	printer *message.Printer
	unit    currency.Unit
	symbol  string
}

func NewMoney(tag language.Tag, unit currency.Unit) Money {
	p := message.NewPrinter(tag)

	return Money{
		tag:     tag,
		printer: p,
		unit:    unit,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
	}
}

// ParseMoney builds a formatter from a BCP 47 locale and an ISO 4217 code.
func ParseMoney(locale, iso string) (Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Money{}, fmt.Errorf("locale[%s] is not valid: %w", locale, err)
	}

	unit, err := currency.ParseISO(iso)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", iso, err)
	}

	return NewMoney(tag, unit), nil
}

func (f Money) Unit() currency.Unit {
	return f.unit
}

// Amount rounds to whole units before rendering.
func (f Money) Amount(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()

	return f.printer.Sprint(number.Decimal(whole, number.MaxFractionDigits(0))) + nbsp + f.symbol
}

func (f Money) Money(m domain.Money) string {
	if m.Currency != f.unit {
		return NewMoney(f.tag, m.Currency).Amount(m.Amount)
	}

	return f.Amount(m.Amount)
}
