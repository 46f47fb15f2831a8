package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"aquaroom/internal/config"
	"aquaroom/internal/http/handlers"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
)

// newTestApp wires the admin API the way main does, against an
// in-memory database with the standard seed data.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, "test-secret")

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()}, authSvc)
	app.Post("/api/upload", handlers.RequireAdmin(authSvc), deps.UploadHandler.Upload)
	api := app.Group("/api/admin", handlers.RequireAdmin(authSvc))

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Post("/", deps.ProductHandler.Create)
	products.Post("/shipping-preview", deps.ProductHandler.ShippingPreview)
	products.Get("/:id", deps.ProductHandler.Get)

	categories := api.Group("/categories")
	categories.Get("/", deps.CategoryHandler.List)
	categories.Post("/", deps.CategoryHandler.Create)
	categories.Put("/:id", deps.CategoryHandler.Update)

	coupons := api.Group("/coupons")
	coupons.Get("/", deps.CouponHandler.List)
	coupons.Post("/", deps.CouponHandler.Create)
	coupons.Post("/validate", deps.CouponHandler.Validate)

	orders := api.Group("/orders")
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/export", deps.OrderHandler.Export)
	orders.Post("/:id/status", deps.OrderHandler.SetStatus)

	return app, db, authSvc
}

// adminSession binds a session for the seeded admin and returns its sid.
func adminSession(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatalf("bind admin session: %v", err)
	}
	return "sid-admin"
}

func jsonReq(method, target string, body any) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func asAdmin(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}
