package datemath_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo-client/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/Berlin")
	require.NoError(t, err)

	_, err = datemath.NewParser("Invalid/Timezone")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{name: "Today", relative: "today", want: startOfBase},
		{name: "Tomorrow", relative: "Tomorrow ", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", relative: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "In 3 days", relative: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", relative: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", relative: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Next week", relative: "next week", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Invalid duration pattern", relative: "in a few days", want: baseTime, wantErr: true},
		{name: "Next Monday (from Wed)", relative: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", relative: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Unknown fallback", relative: "some random day", want: startOfBase},
		{name: "Invalid Next Weekday", relative: "next funday", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, baseTime)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestExtract(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		text       string
		want       time.Time
		wantAllDay bool
		wantOK     bool
	}{
		{
			name:   "tomorrow at 5pm",
			text:   "Buy milk tomorrow at 5pm",
			want:   time.Date(2024, 5, 2, 17, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "24h clock",
			text:   "Standup today 09:15",
			want:   time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "12am is midnight",
			text:   "backup tonight at 12:30 am",
			want:   time.Date(2024, 5, 1, 0, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:       "weekday without time",
			text:       "Call the dentist friday",
			want:       time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			wantAllDay: true,
			wantOK:     true,
		},
		{
			name:   "no day phrase",
			text:   "Read a book at 5pm",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parser.Extract(tt.text, baseTime)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.True(t, got.AbsoluteTime.Equal(tt.want), "got %v, want %v", got.AbsoluteTime, tt.want)
			assert.Equal(t, tt.wantAllDay, got.IsAllDay)
		})
	}
}

func TestExtractInLocation(t *testing.T) {
	parser, err := datemath.NewParser("America/New_York")
	require.NoError(t, err)
	// 02:00 UTC on May 2 is still May 1 in New York.
	baseTime := time.Date(2024, 5, 2, 2, 0, 0, 0, time.UTC)

	got, ok := parser.Extract("tomorrow at 5pm", baseTime)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 2, 21, 0, 0, 0, time.UTC), got.AbsoluteTime.UTC())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		text         string
		hour, minute int
		ok           bool
	}{
		{text: "5pm", hour: 17, ok: true},
		{text: "5 PM", hour: 17, ok: true},
		{text: "12pm", hour: 12, ok: true},
		{text: "12am", hour: 0, ok: true},
		{text: "17:45", hour: 17, minute: 45, ok: true},
		{text: "9:05am", hour: 9, minute: 5, ok: true},
		{text: "13pm", ok: false},
		{text: "25:00", ok: false},
		{text: "in 3 days", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			hour, minute, ok := datemath.ParseClock(tt.text)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestEndOfDay(t *testing.T) {
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC), parser.EndOfDay(base))
}
