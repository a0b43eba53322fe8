package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day exchanged as a plain YYYY-MM-DD string.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// String renders the wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON renders the date as a bare YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts a bare YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AcademicSession is a school calendar year/term record. IDs are assigned by
// the server; at most one session carries IsCurrent at any moment, an
// invariant the backend enforces across the whole collection.
type AcademicSession struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate Date      `json:"startDate"`
	EndDate   Date      `json:"endDate"`
	IsCurrent bool      `json:"isCurrent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionRequest is the create/update payload for academic sessions.
type SessionRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate Date   `json:"startDate" validate:"required"`
	EndDate   Date   `json:"endDate" validate:"required"`
	IsCurrent bool   `json:"isCurrent,omitempty"`
}

// Validate checks required fields and the date ordering rule: the start
// date must be strictly before the end date.
func (r SessionRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("startDate and endDate are required")
	}
	if !r.StartDate.Before(r.EndDate.Time) {
		return fmt.Errorf("start date must be before end date")
	}
	return nil
}
