package repos

import (
	"strings"

	"aquaroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MessageRepo struct{ db *sqlx.DB }

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) List(p ListParams) ([]domain.ContactMessage, int, error) {
	where := `1=1`
	args := []any{}
	if p.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?)`
		s := "%" + strings.ToLower(p.Search) + "%"
		args = append(args, s, s, s)
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM contact_messages WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT id, name, email, subject, message, is_read, created_at
	  FROM contact_messages WHERE ` + where + ` ORDER BY ` + p.orderBy("created_at") + ` LIMIT ? OFFSET ?`
	args = append(args, p.limit(), p.offset())

	var out []domain.ContactMessage
	err := r.db.Select(&out, r.db.Rebind(q), args...)
	return out, total, err
}

func (r *MessageRepo) MarkRead(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE contact_messages SET is_read = TRUE WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}

func (r *MessageRepo) Delete(id string) error {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM contact_messages WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return oneRow(res)
}
