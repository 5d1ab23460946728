package templates

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// parseFrontmatter splits a template file into its YAML header, decoded into
// meta, and the body that follows it.
func parseFrontmatter(content []byte, meta any) (string, error) {
	if !bytes.HasPrefix(content, delimiter) {
		return "", fmt.Errorf("%w: missing opening delimiter", ErrInvalidFrontmatter)
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return "", fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	header := rest[:end]
	body := rest[end+len(delimiter):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	if err := yaml.Unmarshal(header, meta); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return string(body), nil
}
