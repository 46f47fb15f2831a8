package services_test

import (
	"testing"

	"aquaroom/internal/repos"
	"aquaroom/internal/services"
)

func newAlertSvc(t *testing.T) (*services.AlertService, *repos.AlertRepo, func(query string, args ...any)) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	alertRepo := repos.NewAlertRepo(db)
	svc := services.NewAlertService(alertRepo, repos.NewProductRepo(db), repos.NewOrderRepo(db))
	exec := func(query string, args ...any) {
		t.Helper()
		db.MustExec(db.Rebind(query), args...)
	}
	return svc, alertRepo, exec
}

func TestGenerateAlertsFromStockLevels(t *testing.T) {
	svc, alertRepo, exec := newAlertSvc(t)

	// Seed data has one product (food-tetra, stock 4) at or under its
	// low-stock threshold. Add an out-of-stock one and a pending order.
	exec(`UPDATE products SET stock = 0 WHERE id = 'filter-hw'`)
	exec(`INSERT INTO orders(id, status, total) VALUES ('ord-p1', 'PENDING', 500)`)

	n, err := svc.Generate()
	if err != nil {
		t.Fatal(err)
	}
	// food-tetra low, filter-hw out, plus the pending-orders alert.
	if n != 3 {
		t.Fatalf("expected 3 alerts, got %d", n)
	}

	s, err := alertRepo.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Unread != 3 || s.Critical != 1 || s.Warning != 1 || s.Info != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}

	// Regeneration refreshes open alerts instead of duplicating them.
	if _, err := svc.Generate(); err != nil {
		t.Fatal(err)
	}
	s, err = alertRepo.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Unread != 3 {
		t.Fatalf("regeneration must not duplicate, got %d unread", s.Unread)
	}

	// Read alerts drop out of the summary.
	if _, err := svc.MarkAllRead(); err != nil {
		t.Fatal(err)
	}
	s, err = alertRepo.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Unread != 0 {
		t.Fatalf("expected 0 unread after bulk read, got %d", s.Unread)
	}
}
