// Package pricing holds the pure business-rule evaluators: per-product
// shipping fees and coupon discounts. Nothing here touches the database
// or the clock; callers supply every input.
package pricing

import "fmt"

type Zone string

const (
	ZoneBangkok   Zone = "bangkok"
	ZoneProvinces Zone = "provinces"
	ZoneRemote    Zone = "remote"
)

// ValidationError reports a bad input for a specific field so handlers
// can surface field-level messages.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }

func invalid(field, msg string) *ValidationError { return &ValidationError{Field: field, Msg: msg} }

// ShippingConfig mirrors a product's shipping columns. Pointer fields are
// nil when the admin never configured them; the calculator treats missing
// required fields as errors rather than falling back to form defaults.
type ShippingConfig struct {
	HasSpecialShipping    bool
	CostBangkok           *float64
	CostProvinces         *float64
	CostRemote            *float64
	SpecialBase           *float64
	SpecialQty            *int
	SpecialExtra          *float64
	FreeShippingThreshold *float64
}

// ShippingFee returns the fee for shipping qty units of a product to zone.
// subtotal, when non-nil, is the order subtotal used for the free-shipping
// check; the threshold boundary is inclusive.
func ShippingFee(cfg ShippingConfig, qty int, zone Zone, subtotal *float64) (float64, error) {
	if qty <= 0 {
		return 0, invalid("quantity", fmt.Sprintf("must be positive, got %d", qty))
	}
	if subtotal != nil && cfg.FreeShippingThreshold != nil && *subtotal >= *cfg.FreeShippingThreshold {
		return 0, nil
	}

	if !cfg.HasSpecialShipping {
		var cost *float64
		switch zone {
		case ZoneBangkok:
			cost = cfg.CostBangkok
		case ZoneProvinces:
			cost = cfg.CostProvinces
		case ZoneRemote:
			cost = cfg.CostRemote
		default:
			return 0, invalid("zone", fmt.Sprintf("unknown zone %q", zone))
		}
		if cost == nil {
			return 0, invalid("shippingCost", fmt.Sprintf("no rate configured for zone %q", zone))
		}
		return *cost, nil
	}

	if cfg.SpecialBase == nil || cfg.SpecialQty == nil || cfg.SpecialExtra == nil {
		return 0, invalid("specialShipping", "tiered shipping enabled but base/qty/extra not configured")
	}
	base, threshold, extra := *cfg.SpecialBase, *cfg.SpecialQty, *cfg.SpecialExtra
	if qty <= threshold {
		return base, nil
	}
	return base + float64(qty-threshold)*extra, nil
}
