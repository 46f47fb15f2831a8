package repos

import (
	"github.com/jmoiron/sqlx"
)

// SettingsRepo stores site settings (logo, homepage, about) as raw JSON
// blobs keyed by name. Shape validation happens at the service layer.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(key string) (string, error) {
	var v string
	err := r.db.Get(&v, r.db.Rebind(`SELECT value FROM settings WHERE key = ?`), key)
	return v, err
}

func (r *SettingsRepo) Set(key, value string) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE settings SET value = ?, updated_at = CURRENT_TIMESTAMP WHERE key = ?
	`), value, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = r.db.Exec(r.db.Rebind(`
	  INSERT INTO settings(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	`), key, value)
	return err
}
