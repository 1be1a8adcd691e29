// Package assets provides the page templates and style sheets used to render
// publication and presentation pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in pages)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the commands use: a site can override a single
// template (say, presentations.html) and keep the embedded ones for the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. pub-list.css
//	└── templates/
//	    └── {name}.html          # publications, presentations, chart
//
// Templates are html/template sources. The data they receive is defined in
// internal/render.
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
