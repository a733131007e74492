package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string // "primary" when empty
	TaskID      int64  // stored as a private extended property when non-zero
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/Berlin"
}

// Event is a simplified representation of a created Google Calendar event.
type Event struct {
	ID        string
	TaskID    int64
	Summary   string
	HtmlLink  string
	StartTime time.Time
	EndTime   time.Time
}
