package league

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-granularity ISO-8601 layout stored in DATE columns.
const DateLayout = "2006-01-02"

var isoLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999-07:00",
}

// ParseISO parses the ISO-8601 date and date-time forms the tracker writes.
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: not ISO-8601", s)
}

// Date is a calendar day stored as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 date, truncating any time component.
func ParseDate(s string) (Date, error) {
	t, err := ParseISO(s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Date()), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Scan implements sql.Scanner. SQLite hands back time.Time or text depending on
// the driver's own parsing; Postgres hands back time.Time.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Date())
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		return fmt.Errorf("scan date: unexpected NULL")
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullDate is a Date that may be NULL.
type NullDate struct {
	Date  Date
	Valid bool
}

// ParseNullDate treats an empty string as NULL.
func ParseNullDate(s string) (NullDate, error) {
	if strings.TrimSpace(s) == "" {
		return NullDate{}, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return NullDate{}, err
	}
	return NullDate{Date: d, Valid: true}, nil
}

// Scan implements sql.Scanner.
func (n *NullDate) Scan(src any) error {
	if src == nil {
		*n = NullDate{}
		return nil
	}
	// Empty text is what older rows hold for an unset optional date.
	if s, ok := src.(string); ok && s == "" {
		*n = NullDate{}
		return nil
	}
	if b, ok := src.([]byte); ok && len(b) == 0 {
		*n = NullDate{}
		return nil
	}
	if err := n.Date.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements driver.Valuer.
func (n NullDate) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Date.Value()
}

// String returns "" for NULL.
func (n NullDate) String() string {
	if !n.Valid {
		return ""
	}
	return n.Date.String()
}
