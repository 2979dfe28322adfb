package policy

import "time"

const dateLayout = "2006-01-02"

// searchLimit bounds next/previous working day lookups.
const searchLimit = 366

type Holiday struct {
	Date time.Time
	Name string
}

// Calendar answers working-day questions for one company. The zero value has
// no holidays and a Saturday/Sunday weekend.
type Calendar struct {
	holidays map[string]string
	weekend  map[time.Weekday]bool
}

func NewCalendar(holidays []Holiday, weekend ...time.Weekday) Calendar {
	c := Calendar{holidays: make(map[string]string, len(holidays))}
	for _, h := range holidays {
		c.holidays[dateOf(h.Date).Format(dateLayout)] = h.Name
	}
	if len(weekend) > 0 {
		c.weekend = make(map[time.Weekday]bool, len(weekend))
		for _, d := range weekend {
			c.weekend[d] = true
		}
	}
	return c
}

func (c Calendar) IsWeekend(d time.Time) bool {
	if c.weekend != nil {
		return c.weekend[d.Weekday()]
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (c Calendar) Holiday(d time.Time) (string, bool) {
	name, ok := c.holidays[dateOf(d).Format(dateLayout)]
	return name, ok
}

func (c Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.Holiday(d)
	return ok
}

func (c Calendar) IsWorkingDay(d time.Time) bool {
	return !c.IsWeekend(d) && !c.IsHoliday(d)
}

// WorkingDays counts working days in [start, end]. It is 0 for an empty or
// inverted range.
func (c Calendar) WorkingDays(start, end time.Time) int {
	start, end = dateOf(start), dateOf(end)
	if start.IsZero() || end.IsZero() || start.After(end) {
		return 0
	}
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}

// HolidaysBetween lists holiday dates in [start, end] in ascending order.
func (c Calendar) HolidaysBetween(start, end time.Time) []Holiday {
	start, end = dateOf(start), dateOf(end)
	var out []Holiday
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if name, ok := c.Holiday(d); ok {
			out = append(out, Holiday{Date: d, Name: name})
		}
	}
	return out
}

// NextWorkingDay returns d itself when it is a working day.
func (c Calendar) NextWorkingDay(d time.Time) time.Time {
	d = dateOf(d)
	for i := 0; i < searchLimit; i++ {
		if c.IsWorkingDay(d) {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PreviousWorkingDay returns d itself when it is a working day.
func (c Calendar) PreviousWorkingDay(d time.Time) time.Time {
	d = dateOf(d)
	for i := 0; i < searchLimit; i++ {
		if c.IsWorkingDay(d) {
			return d
		}
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func dateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween is the signed number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}

func formatDate(t time.Time) string {
	return dateOf(t).Format(dateLayout)
}
