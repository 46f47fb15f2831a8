package services

import (
	"database/sql"
	"errors"
	"time"

	"aquaroom/internal/domain"
	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrDuplicateCode  = errors.New("coupon code already exists")
	ErrCouponNotFound = errors.New("coupon not found")
)

type CouponService struct {
	Coupons *repos.CouponRepo
	Now     func() time.Time // injectable clock, defaults to time.Now
}

func NewCouponService(coupons *repos.CouponRepo) *CouponService {
	return &CouponService{Coupons: coupons, Now: time.Now}
}

// CouponView is a coupon row plus its derived status, recomputed on every
// read because a stored is_active flag says nothing about the window.
type CouponView struct {
	domain.Coupon
	Status        pricing.Status `json:"status"`
	StatusDisplay string         `json:"statusDisplay"`
}

func (s *CouponService) view(c domain.Coupon) CouponView {
	st := pricing.CurrentStatus(RuleOf(c), s.Now().UTC())
	return CouponView{Coupon: c, Status: st, StatusDisplay: st.Display()}
}

func (s *CouponService) List(p repos.ListParams) ([]CouponView, int, error) {
	rows, total, err := s.Coupons.List(p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CouponView, 0, len(rows))
	for _, c := range rows {
		out = append(out, s.view(c))
	}
	return out, total, nil
}

func (s *CouponService) Get(id string) (CouponView, error) {
	c, err := s.Coupons.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CouponView{}, ErrCouponNotFound
		}
		return CouponView{}, err
	}
	return s.view(c), nil
}

func (s *CouponService) Create(c domain.Coupon) (CouponView, error) {
	c.Code = pricing.NormalizeCode(c.Code)
	in, err := inputOf(c)
	if err != nil {
		return CouponView{}, err
	}
	if err := pricing.ValidateCouponInput(in); err != nil {
		return CouponView{}, err
	}
	if _, err := s.Coupons.ByCode(c.Code); err == nil {
		return CouponView{}, ErrDuplicateCode
	} else if !errors.Is(err, sql.ErrNoRows) {
		return CouponView{}, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.UsageCount = 0
	if err := s.Coupons.Create(c); err != nil {
		return CouponView{}, err
	}
	return s.view(c), nil
}

func (s *CouponService) Update(c domain.Coupon) (CouponView, error) {
	c.Code = pricing.NormalizeCode(c.Code)
	in, err := inputOf(c)
	if err != nil {
		return CouponView{}, err
	}
	if err := pricing.ValidateCouponInput(in); err != nil {
		return CouponView{}, err
	}
	if existing, err := s.Coupons.ByCode(c.Code); err == nil && existing.ID != c.ID {
		return CouponView{}, ErrDuplicateCode
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return CouponView{}, err
	}
	if err := s.Coupons.Update(c); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return CouponView{}, ErrCouponNotFound
		}
		return CouponView{}, err
	}
	return s.Get(c.ID)
}

func (s *CouponService) SetActive(id string, active bool) error {
	err := s.Coupons.SetActive(id, active)
	if errors.Is(err, repos.ErrNotFound) {
		return ErrCouponNotFound
	}
	return err
}

func (s *CouponService) Delete(id string) error {
	err := s.Coupons.Delete(id)
	if errors.Is(err, repos.ErrNotFound) {
		return ErrCouponNotFound
	}
	return err
}

func (s *CouponService) Stats() (repos.CouponStats, error) { return s.Coupons.Stats() }

// Preview evaluates a coupon against an order context without consuming a
// use. The admin screens use it to answer "would this code apply".
func (s *CouponService) Preview(code string, subtotal float64, itemQty, userUsage int) (pricing.Evaluation, error) {
	c, err := s.Coupons.ByCode(pricing.NormalizeCode(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Evaluation{}, ErrCouponNotFound
		}
		return pricing.Evaluation{}, err
	}
	ord := pricing.OrderContext{
		Subtotal:     subtotal,
		ItemQuantity: itemQty,
		UserUsage:    userUsage,
		Now:          s.Now().UTC(),
	}
	return pricing.EvaluateCoupon(RuleOf(c), ord), nil
}

// Redeem consumes one use after a full eligibility check. The increment is
// conditional at the database so concurrent redemptions cannot overshoot
// the usage limit; this is the contract storefront checkout relies on.
func (s *CouponService) Redeem(code string, subtotal float64, itemQty, userUsage int) (pricing.Evaluation, error) {
	ev, err := s.Preview(code, subtotal, itemQty, userUsage)
	if err != nil {
		return pricing.Evaluation{}, err
	}
	if !ev.Eligible {
		return ev, nil
	}
	c, err := s.Coupons.ByCode(pricing.NormalizeCode(code))
	if err != nil {
		return pricing.Evaluation{}, err
	}
	if err := s.Coupons.Redeem(c.ID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			// Lost the race for the final use.
			ev.Eligible = false
			ev.Discount = 0
			ev.Status = pricing.StatusExhausted
			return ev, nil
		}
		return pricing.Evaluation{}, err
	}
	return ev, nil
}

// RuleOf converts a stored coupon row (string timestamps) into the typed
// rule the evaluator works on. Unparseable dates yield zero times, which
// read as "expired" rather than silently active.
func RuleOf(c domain.Coupon) pricing.CouponRule {
	start, _ := time.Parse(time.RFC3339, c.StartDate)
	end, _ := time.Parse(time.RFC3339, c.EndDate)
	return pricing.CouponRule{
		Code:              c.Code,
		DiscountType:      c.DiscountType,
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		UsageLimit:        c.UsageLimit,
		UsageLimitPerUser: c.UsageLimitPerUser,
		MinimumQuantity:   c.MinimumQuantity,
		StartDate:         start,
		EndDate:           end,
		IsActive:          c.IsActive,
		UsageCount:        c.UsageCount,
	}
}

func inputOf(c domain.Coupon) (pricing.CouponInput, error) {
	start, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return pricing.CouponInput{}, &pricing.ValidationError{Field: "startDate", Msg: "must be RFC3339"}
	}
	end, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return pricing.CouponInput{}, &pricing.ValidationError{Field: "endDate", Msg: "must be RFC3339"}
	}
	return pricing.CouponInput{
		Code:          c.Code,
		Name:          c.Name,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		StartDate:     start,
		EndDate:       end,
	}, nil
}
