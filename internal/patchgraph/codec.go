package patchgraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

const opsKey = "ops"

// Load reads and decodes the graph file at path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingInput("graph file not found").WithCause(err).WithContext("path", path).Build()
		}
		return nil, errors.FileSystemError("failed to read graph file").WithCause(err).WithContext("path", path).Build()
	}
	g, err := Decode(data)
	if err != nil {
		return nil, errors.MalformedData("invalid graph data").WithCause(err).WithContext("path", path).Build()
	}
	return g, nil
}

// Save encodes the graph with two-space indentation and writes it to path.
func (g *Graph) Save(path string) error {
	data, err := g.Encode()
	if err != nil {
		return errors.InternalError("failed to encode graph").WithCause(err).WithContext("path", path).Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileSystemError("failed to write graph file").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}

// Decode parses graph JSON. The document must be an object with an ops array.
func Decode(data []byte) (*Graph, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("graph is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("graph is not a JSON object")
	}
	ops := root.Get(opsKey)
	if !ops.Exists() {
		return nil, fmt.Errorf("graph has no %q list", opsKey)
	}
	if !ops.IsArray() {
		return nil, fmt.Errorf("graph %q is not a list", opsKey)
	}

	g := &Graph{data: bytes.Clone(data)}
	for i, r := range ops.Array() {
		op, err := decodeOperator(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", opsKey, i, err)
		}
		g.Ops = append(g.Ops, op)
	}
	if g.Ops == nil {
		g.Ops = []*Operator{}
	}
	return g, nil
}

func decodeOperator(r gjson.Result) (*Operator, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("operator is %s, not an object", r.Type)
	}
	op := &Operator{ID: text(r.Get("id"))}
	if name := r.Get("objName"); name.Exists() {
		if name.Type != gjson.String {
			return nil, fmt.Errorf("objName is %s, not a string", name.Type)
		}
		op.ObjName = name.Str
	}

	ports := r.Get("portsIn")
	switch {
	case !ports.Exists() || ports.Type == gjson.Null:
		return op, nil
	case !ports.IsArray():
		return nil, fmt.Errorf("portsIn of %s is not a list", op.ID)
	}
	op.hasPorts = true
	for j, pr := range ports.Array() {
		if !pr.IsObject() {
			return nil, fmt.Errorf("portsIn[%d] of %s is not an object", j, op.ID)
		}
		p := &Port{index: j}
		if name := pr.Get("name"); name.Exists() {
			if name.Type != gjson.String {
				return nil, fmt.Errorf("port name of %s is not a string", op.ID)
			}
			p.Name = name.Str
		}
		if v := pr.Get("value"); v.Exists() {
			p.Value = []byte(v.Raw)
		}
		op.PortsIn = append(op.PortsIn, p)
	}
	return op, nil
}

// Encode serializes the graph with two-space indentation. Only changed port
// values are rewritten; every other field keeps its source text and key order.
func (g *Graph) Encode() ([]byte, error) {
	data := g.data
	var err error
	for i, op := range g.Ops {
		for j, p := range op.PortsIn {
			if !p.dirty {
				continue
			}
			if p.index >= 0 {
				data, err = sjson.SetRawBytes(data, fmt.Sprintf("%s.%d.portsIn.%d.value", opsKey, i, p.index), p.Value)
				if err != nil {
					return nil, err
				}
				p.dirty = false
				continue
			}
			if !op.hasPorts {
				if data, err = sjson.SetRawBytes(data, fmt.Sprintf("%s.%d.portsIn", opsKey, i), []byte("[]")); err != nil {
					return nil, err
				}
				op.hasPorts = true
			}
			port, err := p.encode()
			if err != nil {
				return nil, err
			}
			if data, err = sjson.SetRawBytes(data, fmt.Sprintf("%s.%d.portsIn.-1", opsKey, i), port); err != nil {
				return nil, err
			}
			p.index = j
			p.dirty = false
		}
	}
	g.data = data

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimRight(data, " \t\r\n"), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// encode builds a new port object for appending.
func (p *Port) encode() ([]byte, error) {
	port, err := sjson.SetBytes([]byte(`{}`), "name", p.Name)
	if err != nil {
		return nil, err
	}
	if p.Value == nil {
		return port, nil
	}
	return sjson.SetRawBytes(port, "value", p.Value)
}
