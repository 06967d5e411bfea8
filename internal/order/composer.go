// Package order renders a cart into the text message sent to the shop.
package order

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/autoposter/internal/domain"
	"github.com/nikolayk812/autoposter/internal/format"
)

// Template holds the fixed phrases of an order message.
type Template struct {
	Greeting string
	Size     string
	Quantity string
	Subtotal string
	Delivery string
	Regions  map[domain.Region]string
	Address  string
	Comment  string
	Total    string
	Closing  string
}

func DefaultTemplate() Template {
	return Template{
		Greeting: "Здравствуйте! Хочу оформить заказ в АвтоПостер:",
		Size:     "Размер",
		Quantity: "Кол-во",
		Subtotal: "Сумма",
		Delivery: "Доставка",
		Regions: map[domain.Region]string{
			domain.RegionDomestic: "РФ (бесплатно)",
			domain.RegionOther:    "Республика Беларусь (с доплатой)",
		},
		Address: "Город/адрес",
		Comment: "Пожелания по стилю/тексту",
		Total:   "Итого",
		Closing: "Фото/референсы пришлю сюда. Жду макет на согласование 🙂",
	}
}

type Composer struct {
	money format.Money
	tmpl  Template
}

func NewComposer(money format.Money, tmpl Template) *Composer {
	return &Composer{money: money, tmpl: tmpl}
}

// Compose is pure: equal inputs give byte-identical messages.
func (c *Composer) Compose(cart domain.Cart, oc domain.OrderContext) string {
	var lines []string

	lines = append(lines, c.tmpl.Greeting, "")

	for i, l := range cart.Lines {
		lines = append(lines,
			fmt.Sprintf("%d) %s", i+1, l.Title),
			c.item(c.tmpl.Size, l.Size),
			c.item(c.tmpl.Quantity, fmt.Sprint(l.Quantity)),
			c.item(c.tmpl.Subtotal, c.money.Amount(l.Subtotal())),
		)
	}

	lines = append(lines, "", fmt.Sprintf("%s: %s", c.tmpl.Delivery, c.region(oc.Region)))

	if address := strings.TrimSpace(oc.Address); address != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", c.tmpl.Address, address))
	}
	if comment := strings.TrimSpace(oc.Comment); comment != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", c.tmpl.Comment, comment))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("%s: %s", c.tmpl.Total, c.money.Amount(cart.Total())),
		"",
		c.tmpl.Closing,
	)

	return strings.Join(lines, "\n")
}

func (c *Composer) item(label, value string) string {
	return fmt.Sprintf("   • %s: %s", label, value)
}

// region falls back to the domestic phrasing for values it does not know.
func (c *Composer) region(r domain.Region) string {
	if phrase, ok := c.tmpl.Regions[r]; ok {
		return phrase
	}

	return c.tmpl.Regions[domain.RegionDomestic]
}
