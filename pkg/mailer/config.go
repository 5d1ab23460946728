package mailer

// RendererConfig configures the Renderer.
type RendererConfig struct {
	// LayoutDir is the directory holding layouts inside the renderer's FS.
	// Defaults to "layouts".
	LayoutDir string

	// DefaultLayout is used when Render is called with an empty layout name.
	// Defaults to "base.html".
	DefaultLayout string
}
