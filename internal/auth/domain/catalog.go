package domain

import "time"

type Category struct {
	ID        string
	Name      string // unique
	CreatedAt time.Time
}

// Product is a catalog entry. Prices are integer cents; DiscountPriceCents is
// nil when the product is not on offer.
type Product struct {
	ID                 string
	CategoryID         string
	Name               string
	Description        string
	PriceCents         int64
	DiscountPriceCents *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EffectivePriceCents is the price a shopper pays.
func (p Product) EffectivePriceCents() int64 {
	if p.DiscountPriceCents != nil {
		return *p.DiscountPriceCents
	}
	return p.PriceCents
}
