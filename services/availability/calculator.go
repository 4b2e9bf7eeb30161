package availability

import (
	"fmt"
	"time"

	"medibook/models"
)

const (
	DefaultSlotLength = 30 * time.Minute
	DefaultDayCount   = 4

	dateLayout    = "2006-01-02"
	dayLabelFmt   = "Monday, January 2"
	clockLabelFmt = "3:04 PM"
)

// Calculator computes free slots from a daily window and booked intervals.
// The zero value uses DefaultSlotLength. It holds no state and is safe for
// concurrent use.
type Calculator struct {
	SlotLength time.Duration
}

func NewCalculator(slotLength time.Duration) Calculator {
	return Calculator{SlotLength: slotLength}
}

func (c Calculator) slotLength() time.Duration {
	if c.SlotLength <= 0 {
		return DefaultSlotLength
	}
	return c.SlotLength
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only share a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func overlapsAny(start, end time.Time, booked []models.BookedInterval) bool {
	for _, b := range booked {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// checkWindow fails with a *ConfigurationError when the window cannot be used.
func checkWindow(window *models.Availability) error {
	if window == nil {
		return NewConfigurationError(CodeNotConfigured, "no availability window configured")
	}
	if window.Status == models.AvailabilityUnavailable {
		return NewConfigurationError(CodeUnavailable, "doctor is not accepting appointments")
	}
	if window.StartMinute >= window.EndMinute {
		return NewConfigurationError(CodeInvalidWindow,
			fmt.Sprintf("window start %s is not before end %s",
				models.MinuteLabel(window.StartMinute), models.MinuteLabel(window.EndMinute)))
	}
	return nil
}

// dayBounds projects the window onto the calendar day of day in its location.
func dayBounds(window *models.Availability, day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, 0, window.StartMinute, 0, 0, loc),
		time.Date(y, m, d, 0, window.EndMinute, 0, 0, loc)
}

// ComputeAvailability returns one DaySlots per calendar day, starting on the
// day of now in now's location. Candidates start at the window's daily start
// and advance by the slot length; a candidate is kept when it ends within the
// window, does not start before now, and overlaps no booked interval.
// dayCount <= 0 means DefaultDayCount.
func (c Calculator) ComputeAvailability(window *models.Availability, booked []models.BookedInterval, now time.Time, dayCount int) ([]models.DaySlots, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}
	if dayCount <= 0 {
		dayCount = DefaultDayCount
	}
	step := c.slotLength()

	y, m, d := now.Date()
	days := make([]models.DaySlots, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, now.Location())
		dayStart, dayEnd := dayBounds(window, day)
		label := day.Format(dayLabelFmt)

		slots := []models.Slot{}
		for current := dayStart; !current.Add(step).After(dayEnd); current = current.Add(step) {
			next := current.Add(step)
			if current.Before(now) {
				continue
			}
			if overlapsAny(current, next, booked) {
				continue
			}
			slots = append(slots, models.Slot{
				StartTime: current,
				EndTime:   next,
				Formatted: fmt.Sprintf("%s - %s", current.Format(clockLabelFmt), next.Format(clockLabelFmt)),
				DayLabel:  label,
			})
		}

		days = append(days, models.DaySlots{
			Date:         day.Format(dateLayout),
			DisplayLabel: label,
			Slots:        slots,
		})
	}
	return days, nil
}

// ValidateSlot checks that [start, end) is a slot ComputeAvailability could
// produce for window, ignoring bookings: exactly one slot long, aligned to the
// window's daily start, inside the window on start's calendar day in now's
// location, and not in the past.
func (c Calculator) ValidateSlot(window *models.Availability, start, end, now time.Time) error {
	if err := checkWindow(window); err != nil {
		return err
	}
	step := c.slotLength()

	if !end.Equal(start.Add(step)) {
		return fmt.Errorf("%w: slot must last exactly %s", ErrInvalidSlot, step)
	}
	if start.Before(now) {
		return fmt.Errorf("%w: slot starts in the past", ErrInvalidSlot)
	}

	local := start.In(now.Location())
	dayStart, dayEnd := dayBounds(window, local)
	if local.Before(dayStart) || end.After(dayEnd) {
		return fmt.Errorf("%w: slot is outside the availability window %s", ErrInvalidSlot, window.Label())
	}
	if local.Sub(dayStart)%step != 0 {
		return fmt.Errorf("%w: slot is not aligned to %s steps", ErrInvalidSlot, step)
	}
	return nil
}
