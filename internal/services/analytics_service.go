package services

import (
	"github.com/jmoiron/sqlx"
)

// AnalyticsService answers the dashboard queries with direct aggregates.
// Every reader degrades to zero values when there is no data yet, so a
// fresh install renders an empty dashboard instead of an error page.
type AnalyticsService struct {
	DB *sqlx.DB
}

func NewAnalyticsService(db *sqlx.DB) *AnalyticsService { return &AnalyticsService{DB: db} }

type Overview struct {
	Revenue        float64 `db:"revenue" json:"revenue"`
	Orders         int     `db:"orders" json:"orders"`
	PendingOrders  int     `db:"pending_orders" json:"pendingOrders"`
	Customers      int     `db:"customers" json:"customers"`
	Products       int     `db:"products" json:"products"`
	ActiveProducts int     `db:"active_products" json:"activeProducts"`
}

func (s *AnalyticsService) Overview() (Overview, error) {
	var o Overview
	err := s.DB.Get(&o, `
	  SELECT
	    (SELECT COALESCE(SUM(total),0) FROM orders WHERE status != 'CANCELLED') AS revenue,
	    (SELECT COUNT(*) FROM orders)                                           AS orders,
	    (SELECT COUNT(*) FROM orders WHERE status = 'PENDING')                  AS pending_orders,
	    (SELECT COUNT(*) FROM customers)                                        AS customers,
	    (SELECT COUNT(*) FROM products)                                         AS products,
	    (SELECT COUNT(*) FROM products WHERE active)                            AS active_products
	`)
	return o, err
}

type SalesPoint struct {
	Day     string  `db:"day" json:"day"`
	Revenue float64 `db:"revenue" json:"revenue"`
	Orders  int     `db:"orders" json:"orders"`
}

// SalesChart groups non-cancelled orders by calendar day. Timestamps are
// stored as ISO text, so the day is the first ten characters.
func (s *AnalyticsService) SalesChart(days int) ([]SalesPoint, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	var out []SalesPoint
	err := s.DB.Select(&out, s.DB.Rebind(`
	  SELECT substr(created_at,1,10) AS day,
	         COALESCE(SUM(total),0)  AS revenue,
	         COUNT(*)                AS orders
	  FROM orders
	  WHERE status != 'CANCELLED'
	  GROUP BY substr(created_at,1,10)
	  ORDER BY day DESC
	  LIMIT ?
	`), days)
	return out, err
}

type TopProduct struct {
	ProductID   string  `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Units       int     `db:"units" json:"units"`
	Revenue     float64 `db:"revenue" json:"revenue"`
}

func (s *AnalyticsService) TopProducts(limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var out []TopProduct
	err := s.DB.Select(&out, s.DB.Rebind(`
	  SELECT oi.product_id, oi.product_name,
	         COALESCE(SUM(oi.qty),0)            AS units,
	         COALESCE(SUM(oi.qty * oi.price),0) AS revenue
	  FROM order_items oi
	  JOIN orders o ON o.id = oi.order_id AND o.status != 'CANCELLED'
	  GROUP BY oi.product_id, oi.product_name
	  ORDER BY units DESC
	  LIMIT ?
	`), limit)
	return out, err
}

type CustomerStats struct {
	Total    int `db:"total" json:"total"`
	Active   int `db:"active" json:"active"`
	Inactive int `db:"inactive" json:"inactive"`
	Buyers   int `db:"buyers" json:"buyers"`
}

func (s *AnalyticsService) CustomerStats() (CustomerStats, error) {
	var cs CustomerStats
	err := s.DB.Get(&cs, `
	  SELECT
	    COUNT(*)                                                   AS total,
	    COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END),0)        AS active,
	    COALESCE(SUM(CASE WHEN NOT active THEN 1 ELSE 0 END),0)    AS inactive,
	    (SELECT COUNT(DISTINCT LOWER(customer_email)) FROM orders) AS buyers
	  FROM customers`)
	return cs, err
}

type InventoryLine struct {
	ProductID string `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Stock     int    `db:"stock" json:"stock"`
	Level     string `db:"level" json:"level"` // OK | LOW | OUT
}

func (s *AnalyticsService) InventoryReport() ([]InventoryLine, error) {
	var out []InventoryLine
	err := s.DB.Select(&out, `
	  SELECT id AS product_id, name, stock,
	         CASE
	           WHEN stock <= 0           THEN 'OUT'
	           WHEN stock <= low_stock_at THEN 'LOW'
	           ELSE 'OK'
	         END AS level
	  FROM products
	  WHERE active
	  ORDER BY stock ASC, name`)
	return out, err
}
