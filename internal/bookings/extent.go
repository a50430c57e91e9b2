package bookings

import (
	"fmt"
	"time"
)

// ExtentKind discriminates the three shapes a booking's time claim can take
type ExtentKind string

const (
	ExtentStay  ExtentKind = "STAY"  // rooms: check-in/check-out date range
	ExtentEvent ExtentKind = "EVENT" // banquet halls: a single date
	ExtentSlot  ExtentKind = "SLOT"  // tables: a date plus a named time slot
)

const dateLayout = "2006-01-02"

// TemporalExtent is the time claim of a booking. Exactly the fields for
// its kind are set; dates are normalized to UTC midnight.
type TemporalExtent struct {
	Kind     ExtentKind
	CheckIn  time.Time // STAY
	CheckOut time.Time // STAY, exclusive
	Date     time.Time // EVENT and SLOT
	TimeSlot string    // SLOT
}

// ParseExtent builds a validated extent from wire-format date strings.
func ParseExtent(kind string, checkIn, checkOut, date, timeSlot string) (*TemporalExtent, error) {
	extent := &TemporalExtent{Kind: ExtentKind(kind)}

	parseDate := func(value, field string) (time.Time, error) {
		t, err := time.ParseInLocation(dateLayout, value, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid %s date %q", ErrInvalidRequest, field, value)
		}
		return t, nil
	}

	switch extent.Kind {
	case ExtentStay:
		var err error
		if extent.CheckIn, err = parseDate(checkIn, "check_in"); err != nil {
			return nil, err
		}
		if extent.CheckOut, err = parseDate(checkOut, "check_out"); err != nil {
			return nil, err
		}
	case ExtentEvent:
		var err error
		if extent.Date, err = parseDate(date, "event"); err != nil {
			return nil, err
		}
	case ExtentSlot:
		var err error
		if extent.Date, err = parseDate(date, "event"); err != nil {
			return nil, err
		}
		if timeSlot == "" {
			return nil, fmt.Errorf("%w: time_slot is required for slot bookings", ErrInvalidRequest)
		}
		extent.TimeSlot = timeSlot
	default:
		return nil, fmt.Errorf("%w: unknown extent kind %q", ErrInvalidRequest, kind)
	}

	return extent, nil
}

// Validate checks well-formedness against the current time
func (e *TemporalExtent) Validate(now time.Time) error {
	today := now.UTC().Truncate(24 * time.Hour)

	switch e.Kind {
	case ExtentStay:
		if !e.CheckOut.After(e.CheckIn) {
			return fmt.Errorf("%w: check_out must be after check_in", ErrInvalidRequest)
		}
		if e.CheckIn.Before(today) {
			return fmt.Errorf("%w: check_in date is in the past", ErrInvalidRequest)
		}
	case ExtentEvent, ExtentSlot:
		if e.Date.Before(today) {
			return fmt.Errorf("%w: booking date is in the past", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown extent kind %q", ErrInvalidRequest, e.Kind)
	}

	return nil
}

// Overlaps reports whether two extents claim the same time on a resource.
// Extents of different kinds never overlap; a resource only ever carries
// bookings of one kind.
func (e *TemporalExtent) Overlaps(other *TemporalExtent) bool {
	if e.Kind != other.Kind {
		return false
	}

	switch e.Kind {
	case ExtentStay:
		// Half-open ranges [check_in, check_out)
		return e.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(e.CheckOut)
	case ExtentEvent:
		return e.Date.Equal(other.Date)
	case ExtentSlot:
		return e.Date.Equal(other.Date) && e.TimeSlot == other.TimeSlot
	}

	return false
}

// HasBegun reports whether the extent's first day has been reached
func (e *TemporalExtent) HasBegun(now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)

	switch e.Kind {
	case ExtentStay:
		return !e.CheckIn.After(today)
	default:
		return !e.Date.After(today)
	}
}

// Nights returns the number of nights for a stay extent, zero otherwise
func (e *TemporalExtent) Nights() int {
	if e.Kind != ExtentStay {
		return 0
	}
	return int(e.CheckOut.Sub(e.CheckIn).Hours() / 24)
}

// ExpectedKind returns the extent kind a resource category books with
func ExpectedKind(category string) ExtentKind {
	switch category {
	case "ROOM":
		return ExtentStay
	case "BANQUET":
		return ExtentEvent
	case "TABLE":
		return ExtentSlot
	default:
		return ""
	}
}
