package services

import (
	"strconv"
	"strings"
	"time"
)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// parseFlexibleDate accepts "<Month> <Year>" or a bare "<Year>". Months are
// resolved through their 3-letter abbreviation; a bare year defaults to
// January for range starts and December for range ends. "present",
// "current" and "now" (any case) resolve to now.
func parseFlexibleDate(raw string, endOfRange bool, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	switch strings.ToLower(s) {
	case "present", "current", "now":
		return now, true
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		year, err := strconv.Atoi(fields[0])
		if err != nil || year < 1000 || year > 9999 {
			return time.Time{}, false
		}
		month := time.January
		if endOfRange {
			month = time.December
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	case 2:
		key := strings.ToLower(fields[0])
		if len(key) < 3 {
			return time.Time{}, false
		}
		month, ok := monthAbbrevs[key[:3]]
		if !ok {
			return time.Time{}, false
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil || year < 1000 || year > 9999 {
			return time.Time{}, false
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// monthsBetween counts whole calendar months from start to end, clamping
// negative spans to 0.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// durationMonths computes the length of a dated range; unparseable bounds
// degrade to 0 rather than failing.
func durationMonths(startRaw, endRaw string, now time.Time) int {
	start, ok := parseFlexibleDate(startRaw, false, now)
	if !ok {
		return 0
	}
	end, ok := parseFlexibleDate(endRaw, true, now)
	if !ok {
		return 0
	}
	return monthsBetween(start, end)
}
