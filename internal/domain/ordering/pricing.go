package ordering

import "github.com/shopspring/decimal"

// PricingPolicy holds the storefront's order pricing rules. Values
// come from configuration; DefaultPricingPolicy reflects the shipped
// defaults.
type PricingPolicy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingRate      decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricingPolicy returns free shipping from 100.00, a 10.00 flat
// rate below that, and an 8% tax rate.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingRate:      decimal.NewFromInt(10),
		TaxRate:               decimal.NewFromFloat(0.08),
	}
}

// Totals is the pricing breakdown of an order. The identity
// Total = Subtotal + ShippingCost + TaxAmount - DiscountAmount
// always holds.
type Totals struct {
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Compute derives the full breakdown from a subtotal: shipping is free
// at or above the threshold, tax applies to the subtotal only, and no
// discount scheme is in effect.
func (p PricingPolicy) Compute(subtotal decimal.Decimal) Totals {
	shipping := p.FlatShippingRate
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)
	discount := decimal.Zero

	return Totals{
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		TaxAmount:      tax,
		DiscountAmount: discount,
		Total:          subtotal.Add(shipping).Add(tax).Sub(discount),
	}
}
