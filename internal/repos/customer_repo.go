package repos

import (
	"strings"

	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) List(p ListParams) ([]domain.Customer, int, error) {
	where := `1=1`
	args := []any{}
	if p.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)`
		s := "%" + strings.ToLower(p.Search) + "%"
		args = append(args, s, s, "%"+p.Search+"%")
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM customers WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, email, name, phone, active, created_at FROM customers WHERE ` + where +
		` ORDER BY ` + p.orderBy("created_at") + ` LIMIT ? OFFSET ?`
	args = append(args, p.limit(), p.offset())

	var out []domain.Customer
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, total, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, r.db.Rebind(`
	  SELECT id, email, name, phone, active, created_at FROM customers WHERE id = ?
	`), id)
	return c, err
}

func (r *CustomerRepo) SetActive(id string, active bool) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE customers SET active = ? WHERE id = ?`), active, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// OrderTotals aggregates a customer's order history for the detail view.
type CustomerOrderTotals struct {
	Orders int     `db:"orders" json:"orders"`
	Spent  float64 `db:"spent" json:"spent"`
}

func (r *CustomerRepo) OrderTotals(email string) (CustomerOrderTotals, error) {
	var t CustomerOrderTotals
	err := r.db.Get(&t, r.db.Rebind(`
	  SELECT COUNT(*) AS orders, COALESCE(SUM(total),0) AS spent
	  FROM orders WHERE LOWER(customer_email) = LOWER(?) AND status != 'CANCELLED'
	`), email)
	return t, err
}
