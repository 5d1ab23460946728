package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown message bodies into HTML wrapped in a layout.
// Raw HTML in the markdown is not rendered.
type Renderer struct {
	fs            fs.FS
	md            goldmark.Markdown
	layoutCache   map[string]*template.Template
	layoutDir     string
	defaultLayout string
	mu            sync.RWMutex
}

// NewRenderer creates a renderer reading layouts from fsys.
func NewRenderer(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	if cfg.DefaultLayout == "" {
		cfg.DefaultLayout = "base.html"
	}

	return &Renderer{
		fs:            fsys,
		layoutDir:     cfg.LayoutDir,
		defaultLayout: cfg.DefaultLayout,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		layoutCache: make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered HTML and the plain text it came from.
type RenderResult struct {
	HTML string
	Text string
}

// LayoutData is passed to layouts.
type LayoutData struct {
	Metadata map[string]any
	Subject  string
	Content  template.HTML
}

// Render converts markdown to HTML and executes the layout around it.
// Text in the result is the markdown source unchanged.
func (r *Renderer) Render(layout, subject, markdown string, meta map[string]any) (*RenderResult, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}

	if layout == "" {
		layout = r.defaultLayout
	}
	tmpl, err := r.getLayout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	data := LayoutData{
		Metadata: meta,
		Subject:  subject,
		Content:  template.HTML(body.String()),
	}
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("%w: execute layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{HTML: out.String(), Text: markdown}, nil
}

// getLayout returns a cached layout template or parses and caches it.
func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layoutCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layoutCache[name] = tmpl
	return tmpl, nil
}
