package pricing

import (
	"strings"
	"time"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed_amount"
)

// Status classifies a coupon's current redeemability. It is derived from
// stored fields plus the caller-supplied clock and is never persisted.
type Status string

const (
	StatusDisabled         Status = "DISABLED"
	StatusNotStarted       Status = "NOT_STARTED"
	StatusExpired          Status = "EXPIRED"
	StatusExhausted        Status = "EXHAUSTED"
	StatusUserLimitReached Status = "USER_LIMIT_REACHED"
	StatusBelowMinimum     Status = "BELOW_MINIMUM"
	StatusBelowMinQuantity Status = "BELOW_MIN_QUANTITY"
	StatusActive           Status = "ACTIVE"
)

// Display returns the Thai label shown in the admin list screens.
func (s Status) Display() string {
	switch s {
	case StatusDisabled:
		return "ปิดใช้งาน"
	case StatusExpired:
		return "หมดอายุ"
	case StatusNotStarted:
		return "ยังไม่เริ่ม"
	case StatusExhausted:
		return "ใช้หมดแล้ว"
	default:
		return "ใช้งานได้"
	}
}

// CouponRule is the typed view of a stored coupon that the evaluator
// works on. Services convert domain rows (string timestamps) into this.
type CouponRule struct {
	Code              string
	DiscountType      string
	DiscountValue     float64
	MinOrderAmount    *float64
	MaxDiscountAmount *float64
	UsageLimit        *int
	UsageLimitPerUser *int
	MinimumQuantity   *int
	StartDate         time.Time
	EndDate           time.Time
	IsActive          bool
	UsageCount        int
}

// OrderContext carries everything about the order being priced. UserUsage
// is the caller's prior redemption count for this coupon; redemption
// accounting itself lives on the storefront side.
type OrderContext struct {
	Subtotal     float64
	ItemQuantity int
	UserUsage    int
	Now          time.Time
}

type Evaluation struct {
	Status   Status
	Eligible bool
	Discount float64
}

// EvaluateCoupon runs the eligibility chain and, when the coupon is
// eligible, computes the discount. Checks short-circuit in order:
// disabled, not started, expired, exhausted, per-user limit, minimum
// order amount, minimum quantity.
func EvaluateCoupon(c CouponRule, ord OrderContext) Evaluation {
	st := couponStatus(c, ord)
	if st != StatusActive {
		return Evaluation{Status: st}
	}
	return Evaluation{Status: StatusActive, Eligible: true, Discount: Discount(c, ord.Subtotal)}
}

// CurrentStatus derives the display status for list/read endpoints,
// where no order context exists (usage and window checks only).
func CurrentStatus(c CouponRule, now time.Time) Status {
	return couponStatus(c, OrderContext{Now: now, Subtotal: -1, ItemQuantity: -1})
}

func couponStatus(c CouponRule, ord OrderContext) Status {
	switch {
	case !c.IsActive:
		return StatusDisabled
	case ord.Now.Before(c.StartDate):
		return StatusNotStarted
	case ord.Now.After(c.EndDate):
		return StatusExpired
	case c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit:
		return StatusExhausted
	case c.UsageLimitPerUser != nil && ord.UserUsage >= *c.UsageLimitPerUser:
		return StatusUserLimitReached
	case c.MinOrderAmount != nil && ord.Subtotal >= 0 && ord.Subtotal < *c.MinOrderAmount:
		return StatusBelowMinimum
	case c.MinimumQuantity != nil && ord.ItemQuantity >= 0 && ord.ItemQuantity < *c.MinimumQuantity:
		return StatusBelowMinQuantity
	}
	return StatusActive
}

// Discount computes the amount a coupon takes off subtotal, assuming
// eligibility was already established. The result never exceeds subtotal.
func Discount(c CouponRule, subtotal float64) float64 {
	var d float64
	switch c.DiscountType {
	case DiscountFixed:
		d = c.DiscountValue
	case DiscountPercentage:
		d = subtotal * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && d > *c.MaxDiscountAmount {
			d = *c.MaxDiscountAmount
		}
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// CouponInput is the write payload checked before persistence.
type CouponInput struct {
	Code          string
	Name          string
	DiscountType  string
	DiscountValue float64
	StartDate     time.Time
	EndDate       time.Time
}

// ValidateCouponInput enforces the admin-side write rules. It returns the
// first violation as a field-level error; nothing is persisted on failure.
func ValidateCouponInput(in CouponInput) error {
	if len(strings.TrimSpace(in.Code)) < 3 {
		return invalid("code", "must be at least 3 characters")
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if in.DiscountType != DiscountPercentage && in.DiscountType != DiscountFixed {
		return invalid("discountType", "must be percentage or fixed_amount")
	}
	if in.DiscountValue <= 0 {
		return invalid("discountValue", "must be greater than zero")
	}
	if in.DiscountType == DiscountPercentage && in.DiscountValue > 100 {
		return invalid("discountValue", "percentage cannot exceed 100")
	}
	if !in.EndDate.After(in.StartDate) {
		return invalid("endDate", "must be after start date")
	}
	return nil
}

// NormalizeCode canonicalizes a coupon code: trimmed and uppercased.
// Codes are unique case-insensitively, so this runs on save and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
