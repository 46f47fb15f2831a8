package repos

import (
	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AlertRepo struct{ db *sqlx.DB }

func NewAlertRepo(db *sqlx.DB) *AlertRepo { return &AlertRepo{db: db} }

func (r *AlertRepo) List(p ListParams, unreadOnly bool) ([]domain.Alert, int, error) {
	where := `1=1`
	args := []any{}
	if unreadOnly {
		where += ` AND NOT is_read`
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM alerts WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, type, severity, title, message, ref_id, is_read, created_at
	  FROM alerts WHERE ` + where + ` ORDER BY ` + p.orderBy("created_at") + ` LIMIT ? OFFSET ?`
	args = append(args, p.limit(), p.offset())

	var out []domain.Alert
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, total, err
}

// Upsert keeps one open alert per (type, ref_id); regeneration refreshes
// the message instead of stacking duplicates.
func (r *AlertRepo) Upsert(a domain.Alert) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE alerts SET severity = ?, title = ?, message = ?, created_at = CURRENT_TIMESTAMP
	  WHERE type = ? AND ref_id = ? AND NOT is_read
	`), a.Severity, a.Title, a.Message, a.Type, a.RefID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = r.db.Exec(r.db.Rebind(`
	  INSERT INTO alerts(id, type, severity, title, message, ref_id, is_read, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, FALSE, CURRENT_TIMESTAMP)
	`), a.ID, a.Type, a.Severity, a.Title, a.Message, a.RefID)
	return err
}

func (r *AlertRepo) MarkRead(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE alerts SET is_read = TRUE WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *AlertRepo) MarkAllRead() (int, error) {
	res, err := r.db.Exec(`UPDATE alerts SET is_read = TRUE WHERE NOT is_read`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type AlertSummary struct {
	Unread   int `db:"unread" json:"unread"`
	Critical int `db:"critical" json:"critical"`
	Warning  int `db:"warning" json:"warning"`
	Info     int `db:"info" json:"info"`
}

func (r *AlertRepo) Summary() (AlertSummary, error) {
	var s AlertSummary
	err := r.db.Get(&s, `
	  SELECT
	    COUNT(*) AS unread,
	    COALESCE(SUM(CASE WHEN severity = 'critical' THEN 1 ELSE 0 END),0) AS critical,
	    COALESCE(SUM(CASE WHEN severity = 'warning'  THEN 1 ELSE 0 END),0) AS warning,
	    COALESCE(SUM(CASE WHEN severity = 'info'     THEN 1 ELSE 0 END),0) AS info
	  FROM alerts WHERE NOT is_read`)
	return s, err
}
