package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/quickwinfinance/duesflow/pkg/dues"
)

//go:embed defaults/*.md layouts/*.html
var assets embed.FS

// Defaults returns the built-in templates in escalation-flow order.
func Defaults() ([]Template, error) {
	return loadDefaults(assets)
}

func loadDefaults(fsys fs.FS) ([]Template, error) {
	steps := dues.Flow()
	out := make([]Template, 0, len(steps))

	for _, step := range steps {
		name := path.Join("defaults", step.TemplateID+".md")
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("templates: read %s: %w", name, err)
		}

		var t Template
		body, err := parseFrontmatter(data, &t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if t.ID != step.TemplateID || t.Channel != step.Channel {
			return nil, fmt.Errorf("%w: %s does not match flow step %q", ErrInvalidFrontmatter, name, step.TemplateID)
		}

		t.Content = strings.TrimRight(body, "\r\n")
		t.Variables = Variables(t.Subject + "\n" + t.Content)
		out = append(out, t)
	}
	return out, nil
}
