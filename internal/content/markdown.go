package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/patchexport/internal/patchgraph"
)

// Markdown renders the value port of each operator from Markdown to HTML.
// Raw HTML inside the Markdown is passed through.
type Markdown struct {
	Type string
	md   goldmark.Markdown
}

// NewMarkdown creates a Markdown strategy for the given node type.
func NewMarkdown(nodeType string) *Markdown {
	return &Markdown{
		Type: nodeType,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

func (*Markdown) Name() string       { return "markdown" }
func (m *Markdown) NodeType() string { return m.Type }

// Render implements Strategy.
func (m *Markdown) Render(ops []*patchgraph.Operator) (string, error) {
	var buf bytes.Buffer
	for _, op := range ops {
		if err := m.md.Convert([]byte(op.Text(patchgraph.PortValue)), &buf); err != nil {
			return "", fmt.Errorf("render markdown of %s: %w", op.ID, err)
		}
	}
	return buf.String(), nil
}
