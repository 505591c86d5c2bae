package cftime

import (
	"fmt"
	"strings"
	"time"
)

type calendar interface {
	add(ref DateTime, secs int64) DateTime
}

func lookupCalendar(name string) (calendar, error) {
	switch strings.ToLower(name) {
	case "", "standard", "gregorian", "proleptic_gregorian":
		return gregorian{}, nil
	case "noleap", "365_day":
		return fixedCalendar{months: [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}}, nil
	case "all_leap", "366_day":
		return fixedCalendar{months: [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}}, nil
	case "360_day":
		return fixedCalendar{months: [12]int{30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}}, nil
	}
	return nil, fmt.Errorf("unsupported calendar %q", name)
}

// gregorian is proleptic; the Julian switch-over of 1582 is not modelled.
type gregorian struct{}

func (gregorian) add(ref DateTime, secs int64) DateTime {
	t := time.Date(ref.Year, time.Month(ref.Month), ref.Day, ref.Hour, ref.Minute, ref.Second, 0, time.UTC)
	t = time.Unix(t.Unix()+secs, 0).UTC()
	return DateTime{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
	}
}

// fixedCalendar has the same month lengths every year.
type fixedCalendar struct {
	months [12]int
}

func (c fixedCalendar) yearDays() int64 {
	var n int64
	for _, m := range c.months {
		n += int64(m)
	}
	return n
}

func (c fixedCalendar) add(ref DateTime, secs int64) DateTime {
	yd := c.yearDays()
	days := int64(ref.Year)*yd + int64(ref.Day-1)
	for m := 0; m < ref.Month-1; m++ {
		days += int64(c.months[m])
	}
	total := days*86400 + int64(ref.Hour)*3600 + int64(ref.Minute)*60 + int64(ref.Second) + secs

	day := floorDiv(total, 86400)
	rem := total - day*86400
	year := floorDiv(day, yd)
	doy := day - year*yd

	month := 0
	for month < 11 && doy >= int64(c.months[month]) {
		doy -= int64(c.months[month])
		month++
	}
	return DateTime{
		Year: int(year), Month: month + 1, Day: int(doy) + 1,
		Hour: int(rem / 3600), Minute: int(rem % 3600 / 60), Second: int(rem % 60),
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
