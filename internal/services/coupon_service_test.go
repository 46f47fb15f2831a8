package services_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"aquaroom/internal/domain"
	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
)

func newCouponSvc(t *testing.T) (*services.CouponService, *repos.CouponRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo := repos.NewCouponRepo(db)
	return services.NewCouponService(repo), repo
}

func window(from, to time.Duration) (string, string) {
	now := time.Now().UTC()
	return now.Add(from).Format(time.RFC3339), now.Add(to).Format(time.RFC3339)
}

func TestCouponCreateRejectsBadPercentageAndPersistsNothing(t *testing.T) {
	svc, repo := newCouponSvc(t)
	start, end := window(-time.Hour, 24*time.Hour)

	_, err := svc.Create(domain.Coupon{
		Code: "TOOMUCH", Name: "Too much", DiscountType: "percentage",
		DiscountValue: 150, StartDate: start, EndDate: end, IsActive: true,
	})
	var ve *pricing.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "discountValue" {
		t.Fatalf("expected discountValue field, got %q", ve.Field)
	}
	if _, err := repo.ByCode("TOOMUCH"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("rejected coupon must not be persisted, lookup err = %v", err)
	}
}

func TestCouponCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	svc, _ := newCouponSvc(t)
	start, end := window(-time.Hour, 24*time.Hour)

	cv, err := svc.Create(domain.Coupon{
		Code: "  summer25 ", Name: "Summer", DiscountType: "fixed_amount",
		DiscountValue: 25, StartDate: start, EndDate: end, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cv.Code != "SUMMER25" {
		t.Fatalf("expected normalized code SUMMER25, got %q", cv.Code)
	}

	_, err = svc.Create(domain.Coupon{
		Code: "Summer25", Name: "Summer again", DiscountType: "fixed_amount",
		DiscountValue: 10, StartDate: start, EndDate: end, IsActive: true,
	})
	if !errors.Is(err, services.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestCouponStatusDerivedAtReadTime(t *testing.T) {
	svc, _ := newCouponSvc(t)
	start, end := window(-48*time.Hour, 24*time.Hour)

	cv, err := svc.Create(domain.Coupon{
		Code: "WINDOW", Name: "Window", DiscountType: "fixed_amount",
		DiscountValue: 30, StartDate: start, EndDate: end, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cv.Status != pricing.StatusActive {
		t.Fatalf("expected ACTIVE inside window, got %s", cv.Status)
	}

	// Move the clock past the end date; the stored is_active flag is
	// still true but reads must say EXPIRED.
	svc.Now = func() time.Time { return time.Now().UTC().Add(72 * time.Hour) }
	got, err := svc.Get(cv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != pricing.StatusExpired {
		t.Fatalf("expected EXPIRED after window, got %s", got.Status)
	}
	if got.StatusDisplay != "หมดอายุ" {
		t.Fatalf("unexpected display %q", got.StatusDisplay)
	}
}

func TestCouponRedeemStopsAtUsageLimit(t *testing.T) {
	svc, repo := newCouponSvc(t)
	start, end := window(-time.Hour, 24*time.Hour)
	limit := 1

	cv, err := svc.Create(domain.Coupon{
		Code: "ONESHOT", Name: "One shot", DiscountType: "fixed_amount",
		DiscountValue: 50, UsageLimit: &limit, StartDate: start, EndDate: end, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	ev, err := svc.Redeem("ONESHOT", 1000, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Eligible || ev.Discount != 50 {
		t.Fatalf("first redeem should succeed, got %+v", ev)
	}

	ev, err = svc.Redeem("ONESHOT", 1000, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Eligible {
		t.Fatalf("second redeem must be refused, got %+v", ev)
	}
	if ev.Status != pricing.StatusExhausted {
		t.Fatalf("expected EXHAUSTED, got %s", ev.Status)
	}

	c, err := repo.Get(cv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.UsageCount != 1 {
		t.Fatalf("usage_count must stop at the limit, got %d", c.UsageCount)
	}
}

func TestCouponPreviewDoesNotConsumeUse(t *testing.T) {
	svc, repo := newCouponSvc(t)
	start, end := window(-time.Hour, 24*time.Hour)

	cv, err := svc.Create(domain.Coupon{
		Code: "PEEK", Name: "Peek", DiscountType: "percentage",
		DiscountValue: 20, StartDate: start, EndDate: end, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Preview("PEEK", 500, 1, 0); err != nil {
			t.Fatal(err)
		}
	}
	c, err := repo.Get(cv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.UsageCount != 0 {
		t.Fatalf("preview must not consume uses, got %d", c.UsageCount)
	}
}
