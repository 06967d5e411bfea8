// Package catalog loads the static product list the storefront sells from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Currency string        `yaml:"currency"`
	Products []productFile `yaml:"products"`
}

type productFile struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Subtitle    string        `yaml:"subtitle"`
	Description string        `yaml:"description"`
	Thumb       string        `yaml:"thumb"`
	MinOrder    int64         `yaml:"min_order"`
	Options     []variantFile `yaml:"options"`
}

type variantFile struct {
	Size  string `yaml:"size"`
	Price int64  `yaml:"price"`
}

// Default is the catalog compiled into the binary.
func Default() domain.Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}

	return c
}

// Load reads a YAML catalog file. An empty path yields the default catalog.
func Load(path string) (domain.Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog[%s]: %w", path, err)
	}

	return c, nil
}

func Parse(data []byte) (domain.Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.Catalog{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	unit, err := currency.ParseISO(f.Currency)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("currency[%s] is not valid: %w", f.Currency, err)
	}

	if err := validate(f); err != nil {
		return domain.Catalog{}, err
	}

	c := domain.Catalog{Currency: unit}
	for _, p := range f.Products {
		c.Products = append(c.Products, mapProductToDomain(p))
	}

	return c, nil
}

func validate(f catalogFile) error {
	if len(f.Products) == 0 {
		return errors.New("catalog has no products")
	}

	var (
		errs []error
		ids  = make(map[string]struct{}, len(f.Products))
	)

	for i, p := range f.Products {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("products[%d]: id is empty", i))
		}
		if _, dup := ids[p.ID]; dup {
			errs = append(errs, fmt.Errorf("products[%d]: duplicate id %q", i, p.ID))
		}
		ids[p.ID] = struct{}{}

		if p.MinOrder <= 0 {
			errs = append(errs, fmt.Errorf("products[%d]: min_order must be positive", i))
		}
		if len(p.Options) == 0 {
			errs = append(errs, fmt.Errorf("products[%d]: no options", i))
		}

		sizes := make(map[string]struct{}, len(p.Options))
		for j, o := range p.Options {
			if o.Size == "" {
				errs = append(errs, fmt.Errorf("products[%d].options[%d]: size is empty", i, j))
			}
			if _, dup := sizes[o.Size]; dup {
				errs = append(errs, fmt.Errorf("products[%d].options[%d]: duplicate size %q", i, j, o.Size))
			}
			sizes[o.Size] = struct{}{}

			if o.Price <= 0 {
				errs = append(errs, fmt.Errorf("products[%d].options[%d]: price must be positive", i, j))
			}
		}
	}

	return errors.Join(errs...)
}

func mapProductToDomain(p productFile) domain.Product {
	variants := make([]domain.Variant, 0, len(p.Options))
	for _, o := range p.Options {
		variants = append(variants, domain.Variant{
			Size:  o.Size,
			Price: decimal.NewFromInt(o.Price),
		})
	}

	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		Thumb:       p.Thumb,
		Variants:    variants,
		MinOrder:    decimal.NewFromInt(p.MinOrder),
	}
}
