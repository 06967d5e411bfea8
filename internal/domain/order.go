package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRegion = errors.New("unknown delivery region")

// Region is the delivery destination, each with its own cost phrasing.
type Region string

const (
	RegionDomestic Region = "rf"
	RegionOther    Region = "by"
)

func ParseRegion(s string) (Region, error) {
	switch r := Region(strings.ToLower(strings.TrimSpace(s))); r {
	case RegionDomestic, RegionOther:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
	}
}

// OrderContext carries the order fields supplied at checkout time. It is never persisted.
type OrderContext struct {
	Region  Region
	Address string
	Comment string
}
