package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"aquaroom/internal/config"
	"aquaroom/internal/http/handlers"
	applog "aquaroom/internal/log"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false, "message": "something went wrong",
				})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Uploads are the largest legitimate request body
	app.Server().MaxRequestBodySize = 8 << 20 // 8 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/audit logs)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/uploads/")
		},
	}))

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	uploadsDir := filepath.Join(mediaDir, "uploads")
	log.Printf("[static] /static  -> ./web/static")
	log.Printf("[static] /uploads -> %s", uploadsDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/uploads/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(uploadsDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Auth (login throttled)
	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "message": "too many attempts, try again later",
			})
		},
	})
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", loginLimiter, deps.AuthHandler.Login)
	app.Post("/api/auth/login", loginLimiter, deps.AuthHandler.Login)
	app.Post("/api/auth/logout", deps.AuthHandler.Logout)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Post("/api/auth/token", loginLimiter, deps.AuthHandler.Token)
	app.Get("/api/auth/me", deps.AuthHandler.Me)

	// Uploads (shared by product images and settings assets)
	app.Post("/api/upload", handlers.RequireAdmin(authSvc), deps.UploadHandler.Upload)

	// Admin shell
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/admin") })
	app.Get("/admin", handlers.RequireAdmin(authSvc), func(c *fiber.Ctx) error {
		return c.Render("admin", fiber.Map{})
	})

	// Admin API
	api := app.Group("/api/admin", handlers.RequireAdmin(authSvc))

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Post("/", deps.ProductHandler.Create)
	products.Post("/shipping-preview", deps.ProductHandler.ShippingPreview)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)
	products.Post("/:id/status", deps.ProductHandler.SetStatus)

	categories := api.Group("/categories")
	categories.Get("/", deps.CategoryHandler.List)
	categories.Post("/", deps.CategoryHandler.Create)
	categories.Put("/:id", deps.CategoryHandler.Update)
	categories.Delete("/:id", deps.CategoryHandler.Delete)

	coupons := api.Group("/coupons")
	coupons.Get("/", deps.CouponHandler.List)
	coupons.Get("/stats", deps.CouponHandler.Stats)
	coupons.Post("/", deps.CouponHandler.Create)
	coupons.Post("/validate", deps.CouponHandler.Validate)
	coupons.Get("/:id", deps.CouponHandler.Get)
	coupons.Put("/:id", deps.CouponHandler.Update)
	coupons.Delete("/:id", deps.CouponHandler.Delete)
	coupons.Post("/:id/status", deps.CouponHandler.SetStatus)

	customers := api.Group("/customers")
	customers.Get("/", deps.CustomerHandler.List)
	customers.Get("/:id", deps.CustomerHandler.Get)
	customers.Post("/:id/status", deps.CustomerHandler.SetStatus)

	orders := api.Group("/orders")
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/export", deps.OrderHandler.Export)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Post("/:id/status", deps.OrderHandler.SetStatus)

	alerts := api.Group("/alerts")
	alerts.Get("/", deps.AlertHandler.List)
	alerts.Get("/summary", deps.AlertHandler.Summary)
	alerts.Post("/generate", deps.AlertHandler.Generate)
	alerts.Post("/bulk-read", deps.AlertHandler.BulkRead)
	alerts.Post("/:id/read", deps.AlertHandler.MarkRead)

	messages := api.Group("/contact-messages")
	messages.Get("/", deps.MessageHandler.List)
	messages.Post("/:id/read", deps.MessageHandler.MarkRead)
	messages.Delete("/:id", deps.MessageHandler.Delete)

	payments := api.Group("/payment-settings")
	payments.Get("/", deps.SettingsHandler.PaymentMethods)
	payments.Put("/", deps.SettingsHandler.SavePaymentMethods)
	payments.Post("/upload-bank-icon", deps.SettingsHandler.UploadBankIcon)

	api.Get("/logo", deps.SettingsHandler.Setting(services.SettingLogo))
	api.Put("/logo", deps.SettingsHandler.UpdateSetting(services.SettingLogo))
	api.Get("/homepage-setting", deps.SettingsHandler.Setting(services.SettingHomepage))
	api.Put("/homepage-setting", deps.SettingsHandler.UpdateSetting(services.SettingHomepage))
	api.Get("/about-setting", deps.SettingsHandler.Setting(services.SettingAbout))
	api.Put("/about-setting", deps.SettingsHandler.UpdateSetting(services.SettingAbout))

	analytics := api.Group("/analytics")
	analytics.Get("/overview", deps.AnalyticsHandler.Overview)
	analytics.Get("/sales-chart", deps.AnalyticsHandler.SalesChart)
	analytics.Get("/top-products", deps.AnalyticsHandler.TopProducts)
	analytics.Get("/customers-stats", deps.AnalyticsHandler.CustomerStats)
	analytics.Get("/inventory-report", deps.AnalyticsHandler.InventoryReport)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "not found"})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
