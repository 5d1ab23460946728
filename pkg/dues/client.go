package dues

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ClientDue is one client's outstanding invoice.
type ClientDue struct {
	DueDate      time.Time
	LastActionAt *time.Time
	Amount       decimal.Decimal
	ID           string
	Name         string
	Email        string
	Phone        string
	Invoice      string
	Status       EscalationStatus
}

// DaysOverdue reports how many days late the client is at now.
func (c ClientDue) DaysOverdue(now time.Time) int {
	return DaysOverdue(c.DueDate, now)
}

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

// SystemClock returns a clock reading the wall time in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Date returns the calendar date of t in t's location as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysOverdue returns whole calendar days between dueDate and the calendar
// date of now, floored at 0. The calendar date of now is taken in now's
// location, so callers pick the business timezone by converting now.
func DaysOverdue(dueDate, now time.Time) int {
	days := int(Date(now).Sub(Date(dueDate)).Hours() / 24)
	return max(days, 0)
}
