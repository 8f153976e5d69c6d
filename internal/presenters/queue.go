package presenters

import (
	"fmt"
	"strings"
)

// QueueMessage renders the /queue reply from the pending track titles.
func QueueMessage(titles []string) string {
	if len(titles) == 0 {
		return "Queue is empty!"
	}

	var b strings.Builder
	b.WriteString("**Current Queue:**\n")
	for i, title := range titles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	return strings.TrimRight(b.String(), "\n")
}
