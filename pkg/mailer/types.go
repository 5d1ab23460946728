package mailer

import (
	"fmt"
	"strings"
)

// Tags are provider tags attached to a message. Values are either struct{}
// for presence-only tags or a scalar that providers turn into a string.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully prepared message.
type Email struct {
	Headers map[string]string
	Tags    Tags
	Subject string
	HTML    string
	Text    string
	// From overrides the sender identity when the provider allows it.
	From    string
	ReplyTo string
	To      []string
}

// Validate checks the fields every provider needs.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0 || strings.TrimSpace(e.To[0]) == "":
		return ErrNoRecipient
	case strings.TrimSpace(e.Subject) == "":
		return ErrNoSubject
	case strings.TrimSpace(e.HTML) == "":
		return ErrNoContent
	}
	return nil
}
