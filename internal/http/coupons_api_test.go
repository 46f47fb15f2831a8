package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestCouponCreateRejectsPercentageOver100(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)

	start := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)

	resp, err := app.Test(asAdmin(jsonReq("POST", "/api/admin/coupons/", map[string]any{
		"code": "BIGPCT", "name": "Way too big", "discountType": "percentage",
		"discountValue": 150, "startDate": start, "endDate": end, "isActive": true,
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if env.Success || env.Field != "discountValue" {
		t.Fatalf("expected discountValue failure envelope, got %+v", env)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM coupons WHERE code = 'BIGPCT'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("rejected coupon must not be persisted, found %d rows", n)
	}
}

func TestCouponValidateAppliesCap(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)

	start := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)

	resp, err := app.Test(asAdmin(jsonReq("POST", "/api/admin/coupons/", map[string]any{
		"code": "CAP20", "name": "Twenty capped", "discountType": "percentage",
		"discountValue": 20, "maxDiscountAmount": 100,
		"startDate": start, "endDate": end, "isActive": true,
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expected 201, got %d", resp.StatusCode)
	}

	// 20% of 1000 is 200, capped to 100.
	resp, err = app.Test(asAdmin(jsonReq("POST", "/api/admin/coupons/validate", map[string]any{
		"code": "cap20", "subtotal": 1000, "itemQuantity": 2,
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("validate expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Status        string  `json:"status"`
		StatusDisplay string  `json:"statusDisplay"`
		Eligible      bool    `json:"eligible"`
		Discount      float64 `json:"discount"`
	}
	env := decode(t, resp)
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Eligible || out.Status != "ACTIVE" || out.Discount != 100 {
		t.Fatalf("unexpected evaluation: %+v", out)
	}
	if out.StatusDisplay != "ใช้งานได้" {
		t.Fatalf("unexpected display %q", out.StatusDisplay)
	}
}

func TestCouponValidateUnknownCode(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)

	resp, err := app.Test(asAdmin(jsonReq("POST", "/api/admin/coupons/validate", map[string]any{
		"code": "NOSUCH", "subtotal": 100, "itemQuantity": 1,
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
