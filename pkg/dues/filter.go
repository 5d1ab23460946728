package dues

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the clients whose name, email or invoice contains term,
// compared with Unicode case folding. The term is not trimmed. An empty term
// returns clients unchanged.
func Filter(clients []ClientDue, term string) []ClientDue {
	if term == "" {
		return clients
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]ClientDue, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(fold.String(c.Name), needle) ||
			strings.Contains(fold.String(c.Email), needle) ||
			strings.Contains(fold.String(c.Invoice), needle) {
			out = append(out, c)
		}
	}
	return out
}
