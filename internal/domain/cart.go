package domain

import (
	"github.com/shopspring/decimal"
)

// Cart is an ordered sequence of lines with unique keys, in insertion order.
type Cart struct {
	Lines []CartLine
}

// CartLine is one priced, quantified entry keyed by product and size.
// Price is captured when the line is created and never re-read from the catalog.
type CartLine struct {
	Key       string
	ProductID string
	Title     string
	Size      string
	Price     decimal.Decimal
	Thumb     string
	Quantity  int
}

func LineKey(productID, size string) string {
	return productID + "__" + size
}

// Subtotal is unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the sum of all line quantities.
func (c Cart) Count() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}

	return count
}

// Total is the sum of line subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}

	return total
}

func (c Cart) Line(key string) (CartLine, bool) {
	i := c.index(key)
	if i < 0 {
		return CartLine{}, false
	}

	return c.Lines[i], true
}

// Add returns a cart with one more unit of the variant: an existing line keeps its
// position and price, a new line is appended with quantity 1.
func (c Cart) Add(p Product, v Variant) Cart {
	key := LineKey(p.ID, v.Size)
	lines := c.clone()

	if i := c.index(key); i >= 0 {
		lines[i].Quantity++
		return Cart{Lines: lines}
	}

	lines = append(lines, CartLine{
		Key:       key,
		ProductID: p.ID,
		Title:     p.Title,
		Size:      v.Size,
		Price:     v.Price,
		Thumb:     p.Thumb,
		Quantity:  1,
	})

	return Cart{Lines: lines}
}

// ChangeQuantity returns a cart with delta applied to the keyed line. A line whose
// quantity drops to zero or below is removed. Unknown keys leave the cart unchanged
// and report false.
func (c Cart) ChangeQuantity(key string, delta int) (Cart, bool) {
	i := c.index(key)
	if i < 0 {
		return c, false
	}

	lines := c.clone()
	lines[i].Quantity += delta
	if lines[i].Quantity <= 0 {
		lines = append(lines[:i], lines[i+1:]...)
	}

	return Cart{Lines: lines}, true
}

func (c Cart) index(key string) int {
	for i, l := range c.Lines {
		if l.Key == key {
			return i
		}
	}

	return -1
}

func (c Cart) clone() []CartLine {
	lines := make([]CartLine, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)

	return lines
}
