package patchgraph

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Port names read or written by the export stages.
const (
	PortCSSCode  = "css code"
	PortValue    = "value"
	PortStyle    = "Style"
	PortVisible  = "Visible"
	PortExported = "exported"
)

// Graph is a patch document: an ordered list of operators plus whatever
// other top-level fields the editor stored, which are kept untouched.
type Graph struct {
	data []byte
	Ops  []*Operator
}

// Operator is one node of the graph.
type Operator struct {
	ObjName string
	ID      string
	PortsIn []*Port
	// hasPorts is false when the source carries no portsIn list.
	hasPorts bool
}

// Port is a named input slot on an operator. Value holds the raw JSON of
// the port's value, nil when the port has none.
type Port struct {
	Name  string
	Value []byte
	// index is the port's position in the source list, -1 for appended ports.
	index int
	dirty bool
}

// Select returns the operators whose type path contains nodeType, in graph order.
func (g *Graph) Select(nodeType string) []*Operator {
	var out []*Operator
	for _, op := range g.Ops {
		if op.Is(nodeType) {
			out = append(out, op)
		}
	}
	return out
}

// Is reports whether the operator's type path contains nodeType.
func (op *Operator) Is(nodeType string) bool {
	return nodeType != "" && strings.Contains(op.ObjName, nodeType)
}

// Port returns the first input port with the given name.
func (op *Operator) Port(name string) (*Port, bool) {
	for _, p := range op.PortsIn {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Text returns the named port's value as text, or "" when the port is absent.
func (op *Operator) Text(name string) string {
	if p, ok := op.Port(name); ok {
		return p.Text()
	}
	return ""
}

// MarkExported sets the exported port to true, appending the port when the
// operator has none. It reports whether the graph changed.
func (op *Operator) MarkExported() bool {
	p, ok := op.Port(PortExported)
	if !ok {
		p = &Port{Name: PortExported, index: -1}
		op.PortsIn = append(op.PortsIn, p)
	}
	if p.IsTrue() {
		return false
	}
	p.Value = []byte("true")
	p.dirty = true
	return true
}

// Text renders the value the way string concatenation would: strings
// unquoted, null and absent values empty, everything else as its JSON literal.
func (p *Port) Text() string {
	return text(gjson.ParseBytes(p.Value))
}

// IsTrue reports whether the value is the JSON literal true.
func (p *Port) IsTrue() bool {
	return gjson.ParseBytes(p.Value).Type == gjson.True
}

// Truthy applies loose boolean semantics: false, 0, "", null and absent are false.
func (p *Port) Truthy() bool {
	r := gjson.ParseBytes(p.Value)
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return false
	}
}

func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Null:
		return ""
	default:
		return r.Raw
	}
}
