package repos

import (
	"strings"

	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponCols = `
  id, code, name, description, discount_type, discount_value,
  min_order_amount, max_discount_amount, usage_limit, usage_limit_per_user,
  minimum_quantity, start_date, end_date, is_active, usage_count,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CouponRepo) List(p ListParams) ([]domain.Coupon, int, error) {
	where := `1=1`
	args := []any{}
	if p.Search != "" {
		where += ` AND (UPPER(code) LIKE ? OR LOWER(name) LIKE ?)`
		args = append(args, "%"+strings.ToUpper(p.Search)+"%", "%"+strings.ToLower(p.Search)+"%")
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM coupons WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + couponCols + ` FROM coupons WHERE ` + where +
		` ORDER BY ` + p.orderBy("created_at") + ` LIMIT ? OFFSET ?`
	args = append(args, p.limit(), p.offset())

	var out []domain.Coupon
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, total, err
}

func (r *CouponRepo) Get(id string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, r.db.Rebind(`SELECT `+couponCols+` FROM coupons WHERE id = ?`), id)
	return c, err
}

// ByCode looks up by the canonical uppercased code.
func (r *CouponRepo) ByCode(code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, r.db.Rebind(`SELECT `+couponCols+` FROM coupons WHERE UPPER(code) = ?`),
		strings.ToUpper(code))
	return c, err
}

func (r *CouponRepo) Create(c domain.Coupon) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO coupons(
	    id, code, name, description, discount_type, discount_value,
	    min_order_amount, max_discount_amount, usage_limit, usage_limit_per_user,
	    minimum_quantity, start_date, end_date, is_active, usage_count, created_at
	  ) VALUES (
	    :id, :code, :name, :description, :discount_type, :discount_value,
	    :min_order_amount, :max_discount_amount, :usage_limit, :usage_limit_per_user,
	    :minimum_quantity, :start_date, :end_date, :is_active, :usage_count, CURRENT_TIMESTAMP
	  )`, c)
	return err
}

func (r *CouponRepo) Update(c domain.Coupon) error {
	res, err := r.db.NamedExec(`
	  UPDATE coupons SET
	    code = :code, name = :name, description = :description,
	    discount_type = :discount_type, discount_value = :discount_value,
	    min_order_amount = :min_order_amount, max_discount_amount = :max_discount_amount,
	    usage_limit = :usage_limit, usage_limit_per_user = :usage_limit_per_user,
	    minimum_quantity = :minimum_quantity, start_date = :start_date, end_date = :end_date,
	    is_active = :is_active, updated_at = CURRENT_TIMESTAMP
	  WHERE id = :id`, c)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *CouponRepo) SetActive(id string, active bool) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE coupons SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`), active, id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *CouponRepo) Delete(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM coupons WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Redeem consumes one use of the coupon. The conditional increment is a
// single statement so concurrent redemptions can never push usage_count
// past usage_limit. ErrNotFound means the coupon is missing or exhausted.
func (r *CouponRepo) Redeem(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE coupons
	  SET usage_count = usage_count + 1, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)
	`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

type CouponStats struct {
	Total         int     `db:"total" json:"total"`
	Active        int     `db:"active" json:"active"`
	Disabled      int     `db:"disabled" json:"disabled"`
	TotalRedeemed int     `db:"total_redeemed" json:"totalRedeemed"`
	AvgDiscount   float64 `db:"avg_discount" json:"avgDiscount"`
}

func (r *CouponRepo) Stats() (CouponStats, error) {
	var s CouponStats
	err := r.db.Get(&s, `
	  SELECT
	    COUNT(*)                                                   AS total,
	    COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END),0)     AS active,
	    COALESCE(SUM(CASE WHEN NOT is_active THEN 1 ELSE 0 END),0) AS disabled,
	    COALESCE(SUM(usage_count),0)                               AS total_redeemed,
	    COALESCE(AVG(discount_value),0)                            AS avg_discount
	  FROM coupons`)
	return s, err
}
