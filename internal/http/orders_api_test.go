package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aquaroom/internal/domain"
	"aquaroom/internal/repos"
)

func seedOrder(t *testing.T, orderRepo *repos.OrderRepo, id string) {
	t.Helper()
	err := orderRepo.Create(domain.Order{
		ID: id, CustomerName: "Nok", CustomerEmail: "nok@example.com",
		Zone: "provinces", Subtotal: 940, ShippingFee: 80, Discount: 50,
		Total: 970, CouponCode: "FLAT50", PaymentMethod: "promptpay", Status: "PENDING",
	}, []domain.OrderItem{
		{ProductID: "filter-hw", ProductName: "HW-603B Canister Filter", Qty: 1, Price: 650},
		{ProductID: "food-tetra", ProductName: "Tetra Bits 300g", Qty: 1, Price: 290},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func TestOrderStatusUpdate(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)
	seedOrder(t, repos.NewOrderRepo(db), "ord-1001")

	resp, err := app.Test(asAdmin(jsonReq("POST", "/api/admin/orders/ord-1001/status", map[string]any{
		"status": "PAID",
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var status string
	if err := db.Get(&status, `SELECT status FROM orders WHERE id = 'ord-1001'`); err != nil {
		t.Fatal(err)
	}
	if status != "PAID" {
		t.Fatalf("expected PAID, got %s", status)
	}

	// Unknown status value never reaches the database.
	resp, err = app.Test(asAdmin(jsonReq("POST", "/api/admin/orders/ord-1001/status", map[string]any{
		"status": "TELEPORTED",
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", resp.StatusCode)
	}

	// Missing order -> 404
	resp, err = app.Test(asAdmin(jsonReq("POST", "/api/admin/orders/ord-gone/status", map[string]any{
		"status": "PAID",
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing order, got %d", resp.StatusCode)
	}
}

func TestOrderExportCSV(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)
	seedOrder(t, repos.NewOrderRepo(db), "ord-2001")

	req := httptest.NewRequest("GET", "/api/admin/orders/export", nil)
	resp, err := app.Test(asAdmin(req, sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "orders.csv") {
		t.Fatalf("expected attachment filename, got %q", cd)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,created_at,customer_name") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "ord-2001") || !strings.Contains(lines[1], "970.00") {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}
