package repos

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a write targets a missing row.
var ErrNotFound = errors.New("not found")

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParams carries the common list-endpoint query knobs. SortBy must
// already be whitelisted by the caller (validate.SortColumn) before it is
// spliced into ORDER BY.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  string // ASC | DESC
}

func (p ListParams) offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.limit()
}

func (p ListParams) limit() int {
	if p.Limit < 1 {
		return 20
	}
	return p.Limit
}

func (p ListParams) orderBy(fallback string) string {
	col := p.SortBy
	if col == "" {
		col = fallback
	}
	dir := p.Order
	if dir != "ASC" {
		dir = "DESC"
	}
	return col + " " + dir
}
