package repos

import (
	"strings"

	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, customer_name, customer_email, phone, address, zone,
  subtotal, shipping_fee, discount, total, coupon_code, payment_method,
  status, created_at`

func (r *OrderRepo) List(p ListParams, status string) ([]domain.Order, int, error) {
	where := `1=1`
	args := []any{}
	if p.Search != "" {
		where += ` AND (LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR id LIKE ?)`
		s := "%" + strings.ToLower(p.Search) + "%"
		args = append(args, s, s, "%"+p.Search+"%")
	}
	if status != "" {
		where += ` AND status = ?`
		args = append(args, status)
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM orders WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + orderCols + ` FROM orders WHERE ` + where +
		` ORDER BY ` + p.orderBy("created_at") + ` LIMIT ? OFFSET ?`
	args = append(args, p.limit(), p.offset())

	var out []domain.Order
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, total, err
}

func (r *OrderRepo) Get(id string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, r.db.Rebind(`SELECT `+orderCols+` FROM orders WHERE id = ?`), id); err != nil {
		return domain.Order{}, nil, err
	}
	var items []domain.OrderItem
	if err := r.db.Select(&items, r.db.Rebind(`
	  SELECT order_id, product_id, product_name, qty, price
	  FROM order_items WHERE order_id = ? ORDER BY product_name
	`), id); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) Create(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
	  INSERT INTO orders(id, customer_name, customer_email, phone, address, zone,
	    subtotal, shipping_fee, discount, total, coupon_code, payment_method, status, created_at)
	  VALUES (:id, :customer_name, :customer_email, :phone, :address, :zone,
	    :subtotal, :shipping_fee, :discount, :total, :coupon_code, :payment_method, :status, CURRENT_TIMESTAMP)
	`, o); err != nil {
		return err
	}
	for _, it := range items {
		it.OrderID = o.ID
		if _, err := tx.NamedExec(`
		  INSERT INTO order_items(order_id, product_id, product_name, qty, price)
		  VALUES (:order_id, :product_id, :product_name, :qty, :price)
		`, it); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// All returns every order for CSV export, newest first.
func (r *OrderRepo) All() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
	return out, err
}

func (r *OrderRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`SELECT COUNT(*) FROM orders WHERE status = ?`), status)
	return n, err
}
