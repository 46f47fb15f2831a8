package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"aquaroom/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

func TestAdminAPIGuard(t *testing.T) {
	app, db, authSvc := newTestApp(t)

	// Anonymous -> 401
	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/products/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous expected 401, got %d", resp.StatusCode)
	}

	// Logged-in non-admin -> 403
	hash, _ := bcrypt.GenerateFromPassword([]byte("user-pass-1"), 10)
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role)
	  VALUES('u-somchai','somchai@example.com','Somchai',?,'USER')`, string(hash))
	if err := repos.NewUserRepo(db).BindSession("sid-user", "u-somchai"); err != nil {
		t.Fatal(err)
	}
	reqUser := httptest.NewRequest("GET", "/api/admin/products/", nil)
	reqUser.AddCookie(&http.Cookie{Name: "sid", Value: "sid-user"})
	respUser, err := app.Test(reqUser)
	if err != nil {
		t.Fatal(err)
	}
	if respUser.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin expected 403, got %d", respUser.StatusCode)
	}

	// Admin session cookie -> 200
	sid := adminSession(t, db)
	respAdmin, err := app.Test(asAdmin(httptest.NewRequest("GET", "/api/admin/products/", nil), sid))
	if err != nil {
		t.Fatal(err)
	}
	if respAdmin.StatusCode != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", respAdmin.StatusCode)
	}

	// Admin bearer token -> 200
	tok, err := authSvc.IssueToken("admin@aquaroom.test", "ChangeMe!1")
	if err != nil {
		t.Fatal(err)
	}
	reqTok := httptest.NewRequest("GET", "/api/admin/products/", nil)
	reqTok.Header.Set("Authorization", "Bearer "+tok)
	respTok, err := app.Test(reqTok)
	if err != nil {
		t.Fatal(err)
	}
	if respTok.StatusCode != http.StatusOK {
		t.Fatalf("bearer admin expected 200, got %d", respTok.StatusCode)
	}

	// Garbage bearer token -> 401
	reqBad := httptest.NewRequest("GET", "/api/admin/products/", nil)
	reqBad.Header.Set("Authorization", "Bearer not-a-token")
	respBad, err := app.Test(reqBad)
	if err != nil {
		t.Fatal(err)
	}
	if respBad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token expected 401, got %d", respBad.StatusCode)
	}
}
