package handlers

import (
	"aquaroom/internal/config"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	CouponHandler    *CouponHandler
	CustomerHandler  *CustomerHandler
	OrderHandler     *OrderHandler
	AlertHandler     *AlertHandler
	MessageHandler   *MessageHandler
	SettingsHandler  *SettingsHandler
	AnalyticsHandler *AnalyticsHandler
	UploadHandler    *UploadHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	alertRepo := repos.NewAlertRepo(db)
	msgRepo := repos.NewMessageRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)
	paymentRepo := repos.NewPaymentRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	couponSvc := services.NewCouponService(couponRepo)
	custSvc := services.NewCustomerService(custRepo)
	orderSvc := services.NewOrderService(orderRepo)
	alertSvc := services.NewAlertService(alertRepo, prodRepo, orderRepo)
	settingsSvc := services.NewSettingsService(settingsRepo, paymentRepo)
	analyticsSvc := services.NewAnalyticsService(db)
	uploadSvc := services.NewUploadService(cfg.MediaDir)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: auth},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CouponHandler:    &CouponHandler{Coupons: couponSvc},
		CustomerHandler:  &CustomerHandler{Customers: custSvc},
		OrderHandler:     &OrderHandler{Orders: orderSvc},
		AlertHandler:     &AlertHandler{Alerts: alertSvc},
		MessageHandler:   &MessageHandler{Messages: msgRepo},
		SettingsHandler:  &SettingsHandler{Settings: settingsSvc, Uploads: uploadSvc},
		AnalyticsHandler: &AnalyticsHandler{Analytics: analyticsSvc},
		UploadHandler:    &UploadHandler{Uploads: uploadSvc},
	}
}
