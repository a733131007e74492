package selection

import (
	"fmt"
	"strings"
)

// ConfirmationPrompt is the question shown before a bulk delete of the given titles.
func ConfirmationPrompt(titles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Are you sure you want to delete %d tasks?\n\n", len(titles))
	b.WriteString(strings.Join(titles[:min(len(titles), 3)], "\n"))
	if len(titles) > 3 {
		fmt.Fprintf(&b, "\n...and %d more", len(titles)-3)
	}
	return b.String()
}

// DeletePrompt is the question shown before deleting a single task.
func DeletePrompt(title string) string {
	return fmt.Sprintf("Are you sure you want to delete \"%s\"?", title)
}
