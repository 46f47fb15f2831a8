package handlers_test

import (
	"net/http"
	"testing"
)

func TestCategoryDuplicateNameConflicts(t *testing.T) {
	app, db, _ := newTestApp(t)
	sid := adminSession(t, db)

	resp, err := app.Test(asAdmin(jsonReq("POST", "/api/admin/categories/", map[string]any{
		"name": "Substrates",
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, err = app.Test(asAdmin(jsonReq("POST", "/api/admin/categories/", map[string]any{
		"name": "substrates",
	}), sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d", resp.StatusCode)
	}
	env := decode(t, resp)
	if env.Success {
		t.Fatalf("conflict must report failure envelope, got %+v", env)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories WHERE LOWER(name) = 'substrates'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected a single category row, found %d", n)
	}
}
