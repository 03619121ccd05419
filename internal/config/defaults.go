package config

import "time"

// Default values for every configuration key.
const (
	DefaultCSSOut       = "style/style.css"
	DefaultBackupName   = "index_bck.html"
	DefaultGraphDir     = "js"
	DefaultBackupMarker = "_backup.json"
	DefaultRegistryFile = "ops.js"
	DefaultStyleNode    = "ExternalCSS"
	DefaultWrappedNode  = "SEODivElement"
	DefaultRawNode      = "SEOHtmlFragment"
	DefaultMarkdownNode = "SEOMarkdownElement"
	DefaultCanvasID     = "glcanvas"
	DefaultDebounce     = 2 * time.Second
)

// DefaultNodeTypes are the registry entries patched when none are configured.
func DefaultNodeTypes() []string {
	return []string{DefaultStyleNode, DefaultWrappedNode}
}

// ApplyDefaults fills every unset field.
func ApplyDefaults(cfg *Config) {
	if cfg.CSSOut == "" {
		cfg.CSSOut = DefaultCSSOut
	}
	if cfg.BackupName == "" {
		cfg.BackupName = DefaultBackupName
	}
	if cfg.Graph.Dir == "" {
		cfg.Graph.Dir = DefaultGraphDir
	}
	if cfg.Graph.BackupMarker == "" {
		cfg.Graph.BackupMarker = DefaultBackupMarker
	}
	if cfg.Registry.File == "" {
		cfg.Registry.File = DefaultRegistryFile
	}
	if cfg.Registry.NodeTypes == nil {
		cfg.Registry.NodeTypes = DefaultNodeTypes()
	}
	applyNodeDefaults(&cfg.Nodes)
	if cfg.Anchors.CanvasID == "" {
		cfg.Anchors.CanvasID = DefaultCanvasID
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.Watch.Interval < 0 {
		cfg.Watch.Interval = 0
	}
}

func applyNodeDefaults(n *NodesConfig) {
	if n.Style == "" {
		n.Style = DefaultStyleNode
	}
	if n.Wrapped == "" {
		n.Wrapped = DefaultWrappedNode
	}
	if n.Raw == "" {
		n.Raw = DefaultRawNode
	}
	if n.Markdown == "" {
		n.Markdown = DefaultMarkdownNode
	}
}
