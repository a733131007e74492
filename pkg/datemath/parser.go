package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	inDurationRe = regexp.MustCompile(`\bin (\d+) (day|days|week|weeks|month|months)\b`)
	weekdayRe    = regexp.MustCompile(`\b(next |this )?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	relativeRe   = regexp.MustCompile(`\b(today|tonight|tomorrow|yesterday|next week|next month)\b`)
	clockRe      = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*([ap]m)?\b`)
	meridiemRe   = regexp.MustCompile(`\b(\d{1,2})\s*([ap]m)\b`)

	weekdays = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
)

// Parser resolves relative date phrases to absolute instants in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Berlin"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the timezone the parser resolves in.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a relative day phrase ("tomorrow", "in 3 days", "next friday") to the start of that day.
// Unknown phrases resolve to the start of baseTime's day.
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	if strings.HasPrefix(relative, "in ") && !inDurationRe.MatchString(relative) {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}
	if name, ok := strings.CutPrefix(relative, "next "); ok && name != "week" && name != "month" {
		if _, known := weekdays[name]; !known {
			return baseTime, fmt.Errorf("unknown weekday: %q", name)
		}
	}

	if day, ok := p.matchDay(relative, baseTime); ok {
		return day, nil
	}
	return p.startOfDay(baseTime), nil
}

// Extract scans free text for a day phrase and an optional clock time ("5pm", "17:00", "9:30 am").
// It reports false when the text names no day. IsAllDay is set when no clock time was found.
func (p *Parser) Extract(text string, baseTime time.Time) (ParseResult, bool) {
	lower := strings.ToLower(text)

	day, ok := p.matchDay(lower, baseTime)
	if !ok {
		return ParseResult{}, false
	}

	hour, minute, ok := ParseClock(lower)
	if !ok {
		return ParseResult{AbsoluteTime: day, IsAllDay: true}, true
	}
	at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.location)
	return ParseResult{AbsoluteTime: at}, true
}

// matchDay finds the first day phrase in lower and returns the start of that day.
func (p *Parser) matchDay(lower string, baseTime time.Time) (time.Time, bool) {
	if m := relativeRe.FindStringSubmatch(lower); m != nil {
		switch m[1] {
		case "today", "tonight":
			return p.startOfDay(baseTime), true
		case "tomorrow":
			return p.startOfDay(baseTime.AddDate(0, 0, 1)), true
		case "yesterday":
			return p.startOfDay(baseTime.AddDate(0, 0, -1)), true
		case "next week":
			return p.startOfDay(baseTime.AddDate(0, 0, 7)), true
		case "next month":
			return p.startOfDay(baseTime.AddDate(0, 1, 0)), true
		}
	}

	if m := inDurationRe.FindStringSubmatch(lower); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch {
		case strings.HasPrefix(m[2], "day"):
			return p.startOfDay(baseTime.AddDate(0, 0, amount)), true
		case strings.HasPrefix(m[2], "week"):
			return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), true
		default:
			return p.startOfDay(baseTime.AddDate(0, amount, 0)), true
		}
	}

	if m := weekdayRe.FindStringSubmatch(lower); m != nil {
		return p.nextWeekday(weekdays[m[2]], baseTime), true
	}
	return time.Time{}, false
}

// nextWeekday returns the start of the next target weekday strictly after baseTime's day.
func (p *Parser) nextWeekday(target time.Weekday, baseTime time.Time) time.Time {
	daysUntil := int(target - baseTime.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil))
}

// ParseClock finds the first clock time in text. A bare hour needs am/pm ("5pm"); 24h times need minutes ("17:00").
func ParseClock(text string) (hour, minute int, ok bool) {
	lower := strings.ToLower(text)

	var meridiem string
	if m := clockRe.FindStringSubmatch(lower); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		meridiem = m[3]
	} else if m := meridiemRe.FindStringSubmatch(lower); m != nil {
		hour, _ = strconv.Atoi(m[1])
		meridiem = m[2]
	} else {
		return 0, 0, false
	}

	switch {
	case meridiem != "" && (hour < 1 || hour > 12):
		return 0, 0, false
	case meridiem == "pm" && hour != 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
