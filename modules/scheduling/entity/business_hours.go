package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DayClass buckets a weekday into one of the configurable business-hour keys.
type DayClass string

const (
	DayClassWeekday  DayClass = "mon_fri"
	DayClassSaturday DayClass = "saturday"
	DayClassSunday   DayClass = "sunday"
)

// ClassifyDay maps a weekday to its business-hours key
func ClassifyDay(d time.Weekday) DayClass {
	switch d {
	case time.Saturday:
		return DayClassSaturday
	case time.Sunday:
		return DayClassSunday
	default:
		return DayClassWeekday
	}
}

// DayWindow is one parsed "HH:MM-HH:MM" working window
type DayWindow struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// BusinessHours maps day classes to validated working windows. A missing day
// class means no availability for that class. Construct via ParseBusinessHours
// so malformed interval strings are rejected once, up front, instead of being
// silently skipped per day inside the slot generator.
type BusinessHours struct {
	windows map[DayClass]DayWindow
}

var hoursPattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// ParseBusinessHours validates a raw day-class -> "HH:MM-HH:MM" mapping.
func ParseBusinessHours(raw map[string]string) (*BusinessHours, error) {
	windows := make(map[DayClass]DayWindow, len(raw))

	for key, value := range raw {
		class := DayClass(key)
		switch class {
		case DayClassWeekday, DayClassSaturday, DayClassSunday:
		default:
			return nil, fmt.Errorf("unknown business hours key %q", key)
		}

		m := hoursPattern.FindStringSubmatch(value)
		if m == nil {
			return nil, fmt.Errorf("business hours for %q must be \"HH:MM-HH:MM\", got %q", key, value)
		}

		startHour, _ := strconv.Atoi(m[1])
		startMin, _ := strconv.Atoi(m[2])
		endHour, _ := strconv.Atoi(m[3])
		endMin, _ := strconv.Atoi(m[4])

		if startHour > 23 || endHour > 23 || startMin > 59 || endMin > 59 {
			return nil, fmt.Errorf("business hours for %q out of range: %q", key, value)
		}
		if startHour*60+startMin >= endHour*60+endMin {
			return nil, fmt.Errorf("business hours for %q must start before they end: %q", key, value)
		}

		windows[class] = DayWindow{
			StartHour:   startHour,
			StartMinute: startMin,
			EndHour:     endHour,
			EndMinute:   endMin,
		}
	}

	return &BusinessHours{windows: windows}, nil
}

// Window returns the working window for a day class, if configured.
func (bh *BusinessHours) Window(class DayClass) (DayWindow, bool) {
	w, ok := bh.windows[class]
	return w, ok
}

// IsEmpty reports whether no day class has any availability.
func (bh *BusinessHours) IsEmpty() bool {
	return len(bh.windows) == 0
}
