package templates

import "errors"

var (
	// ErrTemplateNotFound is returned for an id outside the escalation flow.
	ErrTemplateNotFound = errors.New("templates: template not found")

	// ErrInvalidFrontmatter indicates a template file with a malformed header.
	ErrInvalidFrontmatter = errors.New("templates: invalid frontmatter")
)
