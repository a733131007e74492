package fakeremote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo-client/internal/model"
	"smart-todo-client/pkg/datemath"
)

func TestTaskParser(t *testing.T) {
	dates, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	p := NewTaskParser(dates)
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		text     string
		title    string
		priority model.Priority
		category model.Category
		due      *time.Time
	}{
		{
			text:     "Buy milk tomorrow at 5pm",
			title:    "Buy milk",
			priority: model.PriorityMedium,
			category: model.CategoryShopping,
			due:      model.Ptr(time.Date(2026, 5, 2, 17, 0, 0, 0, time.UTC)),
		},
		{
			text:     "urgent client report",
			title:    "client report",
			priority: model.PriorityUrgent,
			category: model.CategoryWork,
		},
		{
			text:     "dentist appointment friday",
			title:    "dentist appointment",
			priority: model.PriorityMedium,
			category: model.CategoryHealth,
			due:      model.Ptr(time.Date(2026, 5, 8, 23, 59, 59, 0, time.UTC)),
		},
		{
			text:     "water the plants when possible",
			title:    "water the plants",
			priority: model.PriorityLow,
			category: model.CategoryOther,
		},
		{
			// "home" inside "homework" ties personal with study; the earlier table entry wins.
			text:     "important finish homework today at 18:30",
			title:    "finish homework",
			priority: model.PriorityHigh,
			category: model.CategoryPersonal,
			due:      model.Ptr(time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)),
		},
		{
			text:     "tomorrow",
			title:    "tomorrow",
			priority: model.PriorityMedium,
			category: model.CategoryOther,
			due:      model.Ptr(time.Date(2026, 5, 2, 23, 59, 59, 0, time.UTC)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := p.Parse(tt.text, now)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.priority, got.Priority)
			assert.Equal(t, tt.category, got.Category)
			if tt.due == nil {
				assert.Nil(t, got.Due)
				return
			}
			require.NotNil(t, got.Due)
			assert.True(t, tt.due.Equal(*got.Due), "due %v, want %v", got.Due, tt.due)
		})
	}
}

func TestCategoryTieGoesToFirst(t *testing.T) {
	// "review" is both a work and a study keyword.
	assert.Equal(t, model.CategoryWork, categoryOf("review"))
}
