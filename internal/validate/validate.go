package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCode  = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)
	reZone  = regexp.MustCompile(`^(bangkok|provinces|remote)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/category/coupon ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// CouponCode validates a normalized (uppercased) coupon code.
func CouponCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCode.MatchString(s)
}

// Zone validates a shipping destination zone.
func Zone(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reZone.MatchString(s)
}

// OrderStatus validates admin-settable order statuses.
func OrderStatus(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "PENDING", "PAID", "SHIPPED", "DELIVERED", "CANCELLED":
		return s, true
	}
	return "", false
}

// Search trims and bounds a free-text search term; empty means no filter.
func Search(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// Page parses a page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit parses a page size, clamped to [1,100] with a default of 20.
func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

// SortOrder normalizes asc/desc, defaulting to desc.
func SortOrder(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return "ASC"
	}
	return "DESC"
}

// SortColumn returns column if it is in allowed, else the fallback.
// Sort keys are whitelisted per repo to keep ORDER BY injection-safe.
func SortColumn(column string, allowed []string, fallback string) string {
	column = strings.TrimSpace(column)
	for _, a := range allowed {
		if strings.EqualFold(column, a) {
			return a
		}
	}
	return fallback
}
