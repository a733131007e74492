package fakeremote

import (
	"regexp"
	"strings"
	"time"

	"smart-todo-client/internal/model"
	"smart-todo-client/pkg/datemath"
)

type categoryKeywords struct {
	category model.Category
	keywords []string
}

// Ties go to the earlier entry.
var categoryTable = []categoryKeywords{
	{model.CategoryWork, []string{"meeting", "project", "deadline", "office", "client", "presentation",
		"report", "email", "call", "conference", "team", "boss", "colleague", "proposal", "budget",
		"review", "analysis"}},
	{model.CategoryPersonal, []string{"family", "home", "friend", "dinner", "lunch", "birthday",
		"anniversary", "vacation", "holiday", "visit", "call mom", "call dad", "personal"}},
	{model.CategoryStudy, []string{"study", "exam", "assignment", "homework", "research", "book", "learn",
		"course", "lecture", "tutorial", "practice", "review", "notes"}},
	{model.CategoryHealth, []string{"doctor", "appointment", "gym", "workout", "exercise", "jog", "run",
		"medicine", "pharmacy", "dentist", "checkup", "therapy", "meditation"}},
	{model.CategoryShopping, []string{"buy", "purchase", "shop", "groceries", "store", "mall", "order",
		"amazon", "online", "milk", "bread", "food", "clothes"}},
}

type priorityKeywords struct {
	priority model.Priority
	keywords []string
}

var priorityTable = []priorityKeywords{
	{model.PriorityUrgent, []string{"urgent", "asap", "emergency", "critical", "immediately"}},
	{model.PriorityHigh, []string{"important", "high priority", "soon", "deadline"}},
	{model.PriorityLow, []string{"low priority", "when possible", "eventually", "sometime"}},
}

var (
	titleNoise = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(today|tomorrow|tonight)\b`),
		regexp.MustCompile(`(?i)\b(next |this )?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		regexp.MustCompile(`(?i)\bat \d{1,2}(:\d{2})?\s*([ap]m)?\b`),
		regexp.MustCompile(`(?i)\bin \d+ (minutes?|hours?|days?|weeks?|months?)\b`),
		regexp.MustCompile(`(?i)\b(next week|next month)\b`),
		regexp.MustCompile(`(?i)\bthis (morning|afternoon|evening|week)\b`),
		regexp.MustCompile(`(?i)\b(urgent|asap|high priority|important)\b`),
		regexp.MustCompile(`(?i)\b(low priority|when possible)\b`),
	}
	spaces = regexp.MustCompile(`\s+`)
)

// TaskParser turns free text into a draft with keyword rules.
type TaskParser struct {
	dates *datemath.Parser
}

// NewTaskParser creates a TaskParser resolving dates with dates.
func NewTaskParser(dates *datemath.Parser) *TaskParser {
	return &TaskParser{dates: dates}
}

// Parse interprets text relative to now. A day without a clock time is due at the end of that day.
func (p *TaskParser) Parse(text string, now time.Time) model.TaskDraft {
	draft := model.TaskDraft{
		Title:    p.cleanTitle(text),
		Priority: priorityOf(text),
		Category: categoryOf(text),
	}
	if res, ok := p.dates.Extract(text, now); ok {
		due := res.AbsoluteTime
		if res.IsAllDay {
			due = p.dates.EndOfDay(due)
		}
		due = due.UTC()
		draft.Due = &due
	}
	return draft
}

func (p *TaskParser) cleanTitle(text string) string {
	clean := text
	for _, re := range titleNoise {
		clean = re.ReplaceAllString(clean, "")
	}
	clean = strings.TrimSpace(spaces.ReplaceAllString(clean, " "))
	if clean == "" {
		return strings.TrimSpace(text)
	}
	return clean
}

func priorityOf(text string) model.Priority {
	lower := strings.ToLower(text)
	for _, row := range priorityTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.priority
			}
		}
	}
	return model.DefaultPriority
}

// categoryOf scores every category by its matched keywords, multi-word keywords counting per word.
func categoryOf(text string) model.Category {
	lower := strings.ToLower(text)
	best, bestScore := model.CategoryOther, 0
	for _, row := range categoryTable {
		score := 0
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				score += len(strings.Fields(kw))
			}
		}
		if score > bestScore {
			best, bestScore = row.category, score
		}
	}
	return best
}
