package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"strconv"

	"aquaroom/internal/domain"
	"aquaroom/internal/repos"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) List(p repos.ListParams, status string) ([]domain.Order, int, error) {
	return s.Orders.List(p, status)
}

func (s *OrderService) Get(id string) (domain.Order, []domain.OrderItem, error) {
	o, items, err := s.Orders.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, nil, ErrOrderNotFound
	}
	return o, items, err
}

func (s *OrderService) UpdateStatus(id, status string) error {
	err := s.Orders.UpdateStatus(id, status)
	if errors.Is(err, repos.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// ExportCSV renders every order as a CSV document for download.
func (s *OrderService) ExportCSV() ([]byte, error) {
	orders, err := s.Orders.All()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"id", "created_at", "customer_name", "customer_email", "phone", "zone",
		"subtotal", "shipping_fee", "discount", "total", "coupon_code", "payment_method", "status",
	})
	for _, o := range orders {
		_ = w.Write([]string{
			o.ID, o.CreatedAt, o.CustomerName, o.CustomerEmail, o.Phone, o.Zone,
			money(o.Subtotal), money(o.ShippingFee), money(o.Discount), money(o.Total),
			o.CouponCode, o.PaymentMethod, o.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
