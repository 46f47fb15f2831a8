package repos

import (
	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) List() ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	err := r.db.Select(&out, `
	  SELECT id, kind, name, bank_name, account_name, account_number, icon_url, active, sort_order
	  FROM payment_methods ORDER BY sort_order, name
	`)
	return out, err
}

// Upsert inserts or replaces a payment method by id; PUT payment-settings
// sends the full set.
func (r *PaymentRepo) Upsert(m domain.PaymentMethod) error {
	res, err := r.db.NamedExec(`
	  UPDATE payment_methods SET
	    kind = :kind, name = :name, bank_name = :bank_name, account_name = :account_name,
	    account_number = :account_number, icon_url = :icon_url, active = :active, sort_order = :sort_order
	  WHERE id = :id`, m)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = r.db.NamedExec(`
	  INSERT INTO payment_methods(id, kind, name, bank_name, account_name, account_number, icon_url, active, sort_order)
	  VALUES (:id, :kind, :name, :bank_name, :account_name, :account_number, :icon_url, :active, :sort_order)
	`, m)
	return err
}

func (r *PaymentRepo) SetIcon(id, url string) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE payment_methods SET icon_url = ? WHERE id = ?`), url, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
