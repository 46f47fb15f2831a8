package services_test

import (
	"testing"

	"aquaroom/internal/repos"
	"aquaroom/internal/services"

	"github.com/jmoiron/sqlx"
)

func newAnalyticsDB(t *testing.T) (*sqlx.DB, *services.AnalyticsService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db, services.NewAnalyticsService(db)
}

func TestOverviewAggregates(t *testing.T) {
	db, svc := newAnalyticsDB(t)

	if err := repos.NewProductRepo(db).SetActive("food-tetra", false); err != nil {
		t.Fatal(err)
	}
	db.MustExec(db.Rebind(`INSERT INTO customers(id,email,name,active) VALUES (?,?,?,?)`),
		"cus-1", "somchai@example.com", "Somchai", true)
	db.MustExec(db.Rebind(`INSERT INTO customers(id,email,name,active) VALUES (?,?,?,?)`),
		"cus-2", "malee@example.com", "Malee", false)
	db.MustExec(db.Rebind(`INSERT INTO orders(id,customer_email,total,status) VALUES (?,?,?,?)`),
		"ord-a1", "somchai@example.com", 970, "DELIVERED")
	db.MustExec(db.Rebind(`INSERT INTO orders(id,customer_email,total,status) VALUES (?,?,?,?)`),
		"ord-a2", "somchai@example.com", 220, "PENDING")
	db.MustExec(db.Rebind(`INSERT INTO orders(id,customer_email,total,status) VALUES (?,?,?,?)`),
		"ord-a3", "malee@example.com", 500, "CANCELLED")

	o, err := svc.Overview()
	if err != nil {
		t.Fatal(err)
	}
	if o.Revenue != 1190 {
		t.Fatalf("cancelled orders must not count toward revenue, got %v", o.Revenue)
	}
	if o.Orders != 3 || o.PendingOrders != 1 {
		t.Fatalf("unexpected order counts: %+v", o)
	}
	if o.Customers != 2 {
		t.Fatalf("unexpected customer count: %+v", o)
	}
	if o.Products != 3 || o.ActiveProducts != 2 {
		t.Fatalf("deactivated product must drop out of active count: %+v", o)
	}
}

func TestCustomerStatsSplitsActive(t *testing.T) {
	db, svc := newAnalyticsDB(t)

	db.MustExec(db.Rebind(`INSERT INTO customers(id,email,name,active) VALUES (?,?,?,?)`),
		"cus-1", "somchai@example.com", "Somchai", true)
	db.MustExec(db.Rebind(`INSERT INTO customers(id,email,name,active) VALUES (?,?,?,?)`),
		"cus-2", "malee@example.com", "Malee", false)
	db.MustExec(db.Rebind(`INSERT INTO orders(id,customer_email,total,status) VALUES (?,?,?,?)`),
		"ord-b1", "Somchai@Example.com", 650, "PAID")

	cs, err := svc.CustomerStats()
	if err != nil {
		t.Fatal(err)
	}
	if cs.Total != 2 || cs.Active != 1 || cs.Inactive != 1 {
		t.Fatalf("unexpected split: %+v", cs)
	}
	if cs.Buyers != 1 {
		t.Fatalf("buyer count must dedupe emails case-insensitively, got %d", cs.Buyers)
	}
}

func TestInventoryReportSkipsInactive(t *testing.T) {
	db, svc := newAnalyticsDB(t)
	prods := repos.NewProductRepo(db)

	if err := prods.SetActive("filter-hw", false); err != nil {
		t.Fatal(err)
	}
	db.MustExec(`UPDATE products SET stock = 0 WHERE id = 'tank-60'`)

	lines, err := svc.InventoryReport()
	if err != nil {
		t.Fatal(err)
	}
	levels := map[string]string{}
	for _, l := range lines {
		levels[l.ProductID] = l.Level
	}
	if _, found := levels["filter-hw"]; found {
		t.Fatal("inactive product must not appear in the inventory report")
	}
	if levels["tank-60"] != "OUT" {
		t.Fatalf("expected tank-60 OUT, got %q", levels["tank-60"])
	}
	// food-tetra is seeded with stock 4 against the default low-stock mark of 5.
	if levels["food-tetra"] != "LOW" {
		t.Fatalf("expected food-tetra LOW, got %q", levels["food-tetra"])
	}
}

func TestCouponStatsCountsDisabled(t *testing.T) {
	db, _ := newAnalyticsDB(t)
	coupons := repos.NewCouponRepo(db)

	if err := coupons.SetActive("cp-flat50", false); err != nil {
		t.Fatal(err)
	}
	s, err := coupons.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total != 2 || s.Active != 1 || s.Disabled != 1 {
		t.Fatalf("unexpected coupon stats: %+v", s)
	}
}
