package services

import (
	"fmt"

	"aquaroom/internal/domain"
	"aquaroom/internal/repos"

	"github.com/google/uuid"
)

type AlertService struct {
	Alerts *repos.AlertRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewAlertService(alerts *repos.AlertRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *AlertService {
	return &AlertService{Alerts: alerts, Prods: prods, Orders: orders}
}

func (s *AlertService) List(p repos.ListParams, unreadOnly bool) ([]domain.Alert, int, error) {
	return s.Alerts.List(p, unreadOnly)
}

func (s *AlertService) Summary() (repos.AlertSummary, error) { return s.Alerts.Summary() }

func (s *AlertService) MarkRead(id string) error { return s.Alerts.MarkRead(id) }

func (s *AlertService) MarkAllRead() (int, error) { return s.Alerts.MarkAllRead() }

// Generate scans current data and refreshes open alerts: one per product
// at or below its low-stock threshold, plus one when pending orders pile
// up. Returns how many alerts were written.
func (s *AlertService) Generate() (int, error) {
	n := 0

	low, err := s.Prods.LowStock()
	if err != nil {
		return 0, err
	}
	for _, p := range low {
		a := domain.Alert{
			ID:    uuid.NewString(),
			RefID: p.ID,
		}
		if p.Stock <= 0 {
			a.Type = "OUT_OF_STOCK"
			a.Severity = "critical"
			a.Title = "สินค้าหมด: " + p.Name
			a.Message = fmt.Sprintf("%s is out of stock", p.Name)
		} else {
			a.Type = "LOW_STOCK"
			a.Severity = "warning"
			a.Title = "สินค้าใกล้หมด: " + p.Name
			a.Message = fmt.Sprintf("%s has %d left (threshold %d)", p.Name, p.Stock, p.LowStockAt)
		}
		if err := s.Alerts.Upsert(a); err != nil {
			return n, err
		}
		n++
	}

	pending, err := s.Orders.CountByStatus("PENDING")
	if err != nil {
		return n, err
	}
	if pending > 0 {
		a := domain.Alert{
			ID:       uuid.NewString(),
			Type:     "PENDING_ORDERS",
			Severity: "info",
			Title:    "คำสั่งซื้อรอดำเนินการ",
			Message:  fmt.Sprintf("%d orders are waiting for action", pending),
			RefID:    "orders-pending",
		}
		if err := s.Alerts.Upsert(a); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
