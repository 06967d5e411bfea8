package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownVariant = errors.New("unknown variant")
)

// Variant is a priced size option of a product.
type Variant struct {
	Size  string
	Price decimal.Decimal
}

type Product struct {
	ID          string
	Title       string
	Subtitle    string
	Description string
	Thumb       string
	Variants    []Variant
	MinOrder    decimal.Decimal
}

// Variant returns the variant with the given size label.
func (p Product) Variant(size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}

	return Variant{}, false
}

// PriceFrom is the lowest variant price, zero when the product has no variants.
func (p Product) PriceFrom() decimal.Decimal {
	if len(p.Variants) == 0 {
		return decimal.Zero
	}

	lowest := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(lowest) {
			lowest = v.Price
		}
	}

	return lowest
}

// Catalog is the immutable product list, all prices in one currency.
type Catalog struct {
	Currency currency.Unit
	Products []Product
}

func (c Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}

// Resolve looks up the product and its variant for an add request.
func (c Catalog) Resolve(productID, size string) (Product, Variant, error) {
	p, ok := c.Product(productID)
	if !ok {
		return Product{}, Variant{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}

	v, ok := p.Variant(size)
	if !ok {
		return Product{}, Variant{}, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, productID, size)
	}

	return p, v, nil
}

// MinimumOrder is the largest minimum among the catalog products.
func (c Catalog) MinimumOrder() decimal.Decimal {
	minimum := decimal.Zero
	for _, p := range c.Products {
		if p.MinOrder.GreaterThan(minimum) {
			minimum = p.MinOrder
		}
	}

	return minimum
}

// Default returns the first product, which the storefront shows by default.
func (c Catalog) Default() (Product, bool) {
	if len(c.Products) == 0 {
		return Product{}, false
	}

	return c.Products[0], true
}
