package repos

import (
	"strings"

	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, description, price, stock, low_stock_at, images_json, active,
  has_special_shipping, shipping_cost_bangkok, shipping_cost_provinces, shipping_cost_remote,
  special_shipping_base, special_shipping_qty, special_shipping_extra, free_shipping_threshold,
  delivery_time, shipping_notes, special_handling,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List(p ListParams, categoryID string) ([]domain.Product, int, error) {
	where := `1=1`
	args := []any{}
	if p.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		s := "%" + strings.ToLower(p.Search) + "%"
		args = append(args, s, s)
	}
	if categoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, categoryID)
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM products WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + productCols + ` FROM products WHERE ` + where +
		` ORDER BY ` + p.orderBy("created_at") + ` LIMIT ? OFFSET ?`
	args = append(args, p.limit(), p.offset())

	var out []domain.Product
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, total, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, r.db.Rebind(`SELECT `+productCols+` FROM products WHERE id = ?`), id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO products(
	    id, category_id, name, description, price, stock, low_stock_at, images_json, active,
	    has_special_shipping, shipping_cost_bangkok, shipping_cost_provinces, shipping_cost_remote,
	    special_shipping_base, special_shipping_qty, special_shipping_extra, free_shipping_threshold,
	    delivery_time, shipping_notes, special_handling, created_at
	  ) VALUES (
	    :id, :category_id, :name, :description, :price, :stock, :low_stock_at, :images_json, :active,
	    :has_special_shipping, :shipping_cost_bangkok, :shipping_cost_provinces, :shipping_cost_remote,
	    :special_shipping_base, :special_shipping_qty, :special_shipping_extra, :free_shipping_threshold,
	    :delivery_time, :shipping_notes, :special_handling, CURRENT_TIMESTAMP
	  )`, p)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.NamedExec(`
	  UPDATE products SET
	    category_id = :category_id, name = :name, description = :description,
	    price = :price, stock = :stock, low_stock_at = :low_stock_at,
	    images_json = :images_json, active = :active,
	    has_special_shipping = :has_special_shipping,
	    shipping_cost_bangkok = :shipping_cost_bangkok,
	    shipping_cost_provinces = :shipping_cost_provinces,
	    shipping_cost_remote = :shipping_cost_remote,
	    special_shipping_base = :special_shipping_base,
	    special_shipping_qty = :special_shipping_qty,
	    special_shipping_extra = :special_shipping_extra,
	    free_shipping_threshold = :free_shipping_threshold,
	    delivery_time = :delivery_time, shipping_notes = :shipping_notes,
	    special_handling = :special_handling,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = :id`, p)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *ProductRepo) SetActive(id string, active bool) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE products SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`), active, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// LowStock returns active products at or below their low-stock threshold,
// used by alert generation and the inventory report.
func (r *ProductRepo) LowStock() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active AND stock <= low_stock_at
	  ORDER BY stock ASC`)
	return out, err
}
