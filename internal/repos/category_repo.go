package repos

import (
	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, slug, sort_order, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY sort_order, name
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, r.db.Rebind(`
	  SELECT id, name, slug, sort_order, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`), id)
	return c, err
}

// ByName looks a category up by its case-insensitive unique name.
func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, r.db.Rebind(`
	  SELECT id, name, slug, sort_order, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE LOWER(name) = LOWER(?)
	`), name)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(r.db.Rebind(`
	  INSERT INTO categories(id, name, slug, sort_order, created_at)
	  VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`), c.ID, c.Name, c.Slug, c.SortOrder)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE categories SET name = ?, slug = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`), c.Name, c.Slug, c.SortOrder, c.ID)
	if err != nil {
		return err
	}
	return oneRow(res)
}

// Delete refuses to remove a category that still has products (RESTRICT).
func (r *CategoryRepo) Delete(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
