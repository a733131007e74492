package datemath

import "time"

// ParseResult holds a due instant found in free text.
type ParseResult struct {
	AbsoluteTime time.Time
	IsAllDay     bool // no clock time was given; AbsoluteTime is the start of the day
}
