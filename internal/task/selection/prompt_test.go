package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-todo-client/internal/task/selection"
)

func TestConfirmationPrompt(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{
			name:   "two",
			titles: []string{"Buy milk", "Call mom"},
			want:   "Are you sure you want to delete 2 tasks?\n\nBuy milk\nCall mom",
		},
		{
			name:   "five",
			titles: []string{"a", "b", "c", "d", "e"},
			want:   "Are you sure you want to delete 5 tasks?\n\na\nb\nc\n...and 2 more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selection.ConfirmationPrompt(tt.titles))
		})
	}
}

func TestDeletePrompt(t *testing.T) {
	assert.Equal(t, `Are you sure you want to delete "Buy milk"?`, selection.DeletePrompt("Buy milk"))
}
