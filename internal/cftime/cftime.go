// Package cftime decodes CF-convention time coordinates of the form
// "<unit> since <reference date>" under the common model calendars.
package cftime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateTime is a calendar-agnostic broken-down timestamp.
type DateTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

// HourStamp formats the timestamp at hour resolution as YYYYMMDDTHH.
func (d DateTime) HourStamp() string {
	return fmt.Sprintf("%04d%02d%02dT%02d", d.Year, d.Month, d.Day, d.Hour)
}

// String formats the timestamp as YYYY-MM-DDTHH:MM:SS.
func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

// Units is a parsed "<unit> since <reference>" string.
type Units struct {
	Step time.Duration
	// Ref is the reference time as written, in the zone given by Offset.
	Ref DateTime
	// Offset is the UTC offset of Ref, east positive.
	Offset time.Duration
}

// maxSeconds bounds decoded offsets to what a float64 holds exactly.
const maxSeconds = 1 << 53

// maxYear bounds reference years.
const maxYear = 1_000_000

var unitSteps = map[string]time.Duration{
	"seconds": time.Second, "second": time.Second, "secs": time.Second, "sec": time.Second, "s": time.Second,
	"minutes": time.Minute, "minute": time.Minute, "mins": time.Minute, "min": time.Minute,
	"hours": time.Hour, "hour": time.Hour, "hrs": time.Hour, "hr": time.Hour, "h": time.Hour,
	"days": 24 * time.Hour, "day": 24 * time.Hour, "d": 24 * time.Hour,
}

// ParseUnits parses a CF time units string such as
// "hours since 2015-01-01 00:00:00".
func ParseUnits(units string) (Units, error) {
	fields := strings.Fields(units)
	if len(fields) < 3 || strings.ToLower(fields[1]) != "since" {
		return Units{}, fmt.Errorf("time units %q are not of the form \"<unit> since <date>\"", units)
	}
	step, ok := unitSteps[strings.ToLower(fields[0])]
	if !ok {
		return Units{}, fmt.Errorf("unsupported time unit %q", fields[0])
	}
	rest := fields[2:]
	// "2015-01-01T00:00:00" carries date and clock in one field.
	if date, clock, ok := strings.Cut(rest[0], "T"); ok {
		rest = append([]string{date, clock}, rest[1:]...)
	}
	ref, err := parseDate(rest[0])
	if err != nil {
		return Units{}, fmt.Errorf("time units %q: %w", units, err)
	}
	u := Units{Step: step, Ref: ref}
	if len(rest) > 1 {
		clock, zone := splitZone(rest[1])
		if err := parseClock(clock, &u.Ref); err != nil {
			return Units{}, fmt.Errorf("time units %q: %w", units, err)
		}
		if zone != "" {
			if u.Offset, err = parseOffset(zone); err != nil {
				return Units{}, fmt.Errorf("time units %q: %w", units, err)
			}
		}
	}
	switch {
	case len(rest) == 3:
		if u.Offset, err = parseOffset(rest[2]); err != nil {
			return Units{}, fmt.Errorf("time units %q: %w", units, err)
		}
	case len(rest) > 3:
		return Units{}, fmt.Errorf("time units %q: unexpected %q", units, strings.Join(rest[3:], " "))
	}
	return u, nil
}

// splitZone separates a trailing "Z" or numeric offset from a clock such as
// "00:00:00+10:00".
func splitZone(clock string) (string, string) {
	if strings.HasSuffix(clock, "Z") || strings.HasSuffix(clock, "z") {
		return clock[:len(clock)-1], "Z"
	}
	if i := strings.LastIndexAny(clock, "+-"); i > 0 {
		return clock[:i], clock[i:]
	}
	return clock, ""
}

// parseOffset accepts UTC, GMT, Z and numeric offsets of the forms ±H,
// ±HH, ±HHMM and ±H:MM.
func parseOffset(s string) (time.Duration, error) {
	switch strings.ToUpper(s) {
	case "UTC", "GMT", "Z":
		return 0, nil
	}
	sign := time.Duration(1)
	body := s
	switch {
	case strings.HasPrefix(s, "+"):
		body = s[1:]
	case strings.HasPrefix(s, "-"):
		sign, body = -1, s[1:]
	}
	hh, mm, hasColon := strings.Cut(body, ":")
	if !hasColon && len(body) == 4 {
		hh, mm = body[:2], body[2:]
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h > 23 || len(hh) > 2 {
		return 0, fmt.Errorf("unsupported time zone %q", s)
	}
	m := 0
	if mm != "" {
		if m, err = strconv.Atoi(mm); err != nil || m > 59 || len(mm) != 2 {
			return 0, fmt.Errorf("unsupported time zone %q", s)
		}
	}
	return sign * (time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

func parseDate(s string) (DateTime, error) {
	parts := strings.Split(s, "-")
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		parts = strings.Split(s[1:], "-")
	}
	if len(parts) == 0 || len(parts) > 3 {
		return DateTime{}, fmt.Errorf("invalid reference date %q", s)
	}
	nums := []int{0, 1, 1}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return DateTime{}, fmt.Errorf("invalid reference date %q", s)
		}
		nums[i] = n
	}
	if neg {
		nums[0] = -nums[0]
	}
	if nums[0] > maxYear || nums[0] < -maxYear {
		return DateTime{}, fmt.Errorf("reference year %d out of range", nums[0])
	}
	if nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > 31 {
		return DateTime{}, fmt.Errorf("invalid reference date %q", s)
	}
	return DateTime{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

func parseClock(s string, d *DateTime) error {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return fmt.Errorf("invalid reference time %q", s)
	}
	vals := [3]float64{}
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fmt.Errorf("invalid reference time %q", s)
		}
		vals[i] = f
	}
	d.Hour, d.Minute, d.Second = int(vals[0]), int(vals[1]), int(vals[2])
	return nil
}

// Decode converts raw time coordinate values to timestamps.
func Decode(values []float64, units, calendar string) ([]DateTime, error) {
	u, err := ParseUnits(units)
	if err != nil {
		return nil, err
	}
	cal, err := lookupCalendar(calendar)
	if err != nil {
		return nil, err
	}
	out := make([]DateTime, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("time value %d is not finite", i)
		}
		// Rounding to the millisecond first keeps 0.958333 days at 23h.
		ms := math.Round(v * float64(u.Step/time.Millisecond))
		if math.Abs(ms/1000) > maxSeconds {
			return nil, fmt.Errorf("time value %d (%g) is out of range", i, v)
		}
		secs := int64(math.Floor(ms/1000)) - int64(u.Offset/time.Second)
		out[i] = cal.add(u.Ref, secs)
	}
	return out, nil
}
