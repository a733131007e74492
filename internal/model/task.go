package model

import (
	"strings"
	"time"
)

// Priority is the urgency ordinal of a task: 1 (Low) to 4 (Urgent).
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4

	// DefaultPriority is applied by the remote service when a draft leaves priority unset.
	DefaultPriority = PriorityMedium
)

// Valid reports whether p is within 1..4.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// Label returns the display name used by the presentation layer.
func (p Priority) Label() string {
	switch p {
	case PriorityUrgent:
		return "Urgent"
	case PriorityHigh:
		return "High"
	case PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

// Category is one of a fixed label set.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryShopping Category = "shopping"
	CategoryOther    Category = "other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryPersonal, CategoryWork, CategoryStudy, CategoryHealth, CategoryShopping, CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Task is a task as held by the remote service. ID, CreatedAt and IsOverdue are server-owned.
type Task struct {
	ID          int64
	Title       string
	Description string
	Due         *time.Time
	Priority    Priority
	Category    Category
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsOverdue   bool
}

// TaskDraft carries the user-supplied fields of a task that does not exist yet.
type TaskDraft struct {
	Title       string
	Description string
	Due         *time.Time
	Priority    Priority // zero leaves the server default
	Category    Category // empty leaves the server default
}

// HasTitle reports whether the draft has a non-blank title.
func (d TaskDraft) HasTitle() bool {
	return strings.TrimSpace(d.Title) != ""
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Due         *time.Time
	ClearDue    bool
	Priority    *Priority
	Category    *Category
	Completed   *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Due == nil && !p.ClearDue &&
		p.Priority == nil && p.Category == nil && p.Completed == nil
}

// Filters are optional predicates over tasks; a nil field means no constraint.
type Filters struct {
	Completed *bool
	Category  *Category
	Priority  *Priority
}

// Match reports whether t satisfies every set predicate.
func (f Filters) Match(t Task) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

// Stats are aggregate counts over the task set.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// ComputeStats derives Stats from tasks.
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if t.IsOverdue {
			s.Overdue++
		}
	}
	return s
}

// Interpretation is the structured guess produced by the remote service for a piece of free text.
type Interpretation struct {
	Text    string
	Parsed  TaskDraft
	Preview TaskDraft
}

// Health is the remote liveness payload.
type Health struct {
	Status   string
	Database string
	Message  string
}
