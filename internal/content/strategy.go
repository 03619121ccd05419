package content

import (
	"strings"

	"git.home.luguber.info/inful/patchexport/internal/patchgraph"
)

// Strategy renders one kind of markup-authoring operator.
type Strategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string
	// NodeType is the type path fragment selecting the strategy's operators.
	NodeType() string
	// Render builds the fragment for the selected operators, in graph order.
	// An empty result means there is nothing to inject.
	Render(ops []*patchgraph.Operator) (string, error)
}

// Wrapped renders all selected operators as one styled container block.
type Wrapped struct {
	Type string
}

func (Wrapped) Name() string       { return "wrapped" }
func (w Wrapped) NodeType() string { return w.Type }

const bodyIndent = "\n        "

// Render implements Strategy.
func (w Wrapped) Render(ops []*patchgraph.Operator) (string, error) {
	if len(ops) == 0 {
		return "", nil
	}
	return Block(ops), nil
}

// Block renders the container for ops. The body concatenates their value
// ports in graph order; the id, Style and Visible attributes come from the
// last operator that carries them.
func Block(ops []*patchgraph.Operator) string {
	var id, style string
	visibility := "hidden"
	var body strings.Builder
	for _, op := range ops {
		id = op.ID
		body.WriteString(op.Text(patchgraph.PortValue))
		if p, ok := op.Port(patchgraph.PortStyle); ok {
			style = flattenStyle(p.Text())
		}
		if p, ok := op.Port(patchgraph.PortVisible); ok {
			visibility = "hidden"
			if p.Truthy() {
				visibility = "visible"
			}
		}
	}

	var b strings.Builder
	b.WriteString(`<div data-op="`)
	b.WriteString(id)
	b.WriteString(`" class="cablesEle" style="`)
	b.WriteString(style)
	b.WriteString(" visibility: ")
	b.WriteString(visibility)
	b.WriteString(`; display: block;">`)
	b.WriteString(bodyIndent)
	b.WriteString(strings.ReplaceAll(body.String(), "\n", bodyIndent))
	b.WriteString("\n    </div>\n")
	return b.String()
}

// flattenStyle replaces every run of line breaks with one space.
func flattenStyle(s string) string {
	var b strings.Builder
	inBreak := false
	for _, r := range s {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte(' ')
			}
			inBreak = true
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return b.String()
}

// Raw concatenates the value port of each operator with no wrapping element.
type Raw struct {
	Type string
}

func (Raw) Name() string       { return "raw" }
func (r Raw) NodeType() string { return r.Type }

// Render implements Strategy.
func (r Raw) Render(ops []*patchgraph.Operator) (string, error) {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.Text(patchgraph.PortValue))
	}
	return b.String(), nil
}
