// Package styles extracts the stylesheet authored in style nodes of a patch graph.
package styles

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
	"git.home.luguber.info/inful/patchexport/internal/patchgraph"
)

// Sheet is the generated stylesheet.
type Sheet struct {
	Path      string
	Content   string
	Operators []string
	// GraphChanged is true when exported flags were written back to the graph.
	GraphChanged bool
}

// Extract concatenates the css code port of every operator matching
// nodeType, in graph order and each followed by a newline, writes the result
// to cssOut and marks the operators exported. The graph file is rewritten
// only when a flag changed. Change.Changed mirrors Sheet.GraphChanged; the
// stylesheet itself is regenerated on every call.
func Extract(graphPath, cssOut, nodeType string) (foundation.Change[Sheet], error) {
	sheet := Sheet{Path: cssOut}

	g, err := patchgraph.Load(graphPath)
	if err != nil {
		return foundation.Unmodified(sheet), err
	}

	var css strings.Builder
	for _, op := range g.Select(nodeType) {
		if p, ok := op.Port(patchgraph.PortCSSCode); ok {
			css.WriteString(p.Text())
			css.WriteString("\n")
		}
		if op.MarkExported() {
			slog.Debug("Marked style node exported", logfields.Operator(op.ID))
			sheet.GraphChanged = true
		}
		sheet.Operators = append(sheet.Operators, op.ID)
	}
	sheet.Content = css.String()

	if sheet.GraphChanged {
		if err := g.Save(graphPath); err != nil {
			return foundation.Unmodified(sheet), err
		}
		slog.Info("Graph updated with exported style nodes", logfields.Path(graphPath), logfields.Count(len(sheet.Operators)))
	}

	if err := os.MkdirAll(filepath.Dir(cssOut), 0o755); err != nil {
		return foundation.ChangedIf(sheet.GraphChanged, sheet), errors.WrapError(err, errors.CategoryFileSystem, "failed to create stylesheet directory").WithContext("path", filepath.Dir(cssOut)).Build()
	}
	if err := os.WriteFile(cssOut, []byte(sheet.Content), 0o644); err != nil {
		return foundation.ChangedIf(sheet.GraphChanged, sheet), errors.WrapError(err, errors.CategoryFileSystem, "failed to write stylesheet").WithContext("path", cssOut).Build()
	}

	slog.Info("Stylesheet written", logfields.Path(cssOut), logfields.NodeType(nodeType), logfields.Count(len(sheet.Operators)))
	return foundation.ChangedIf(sheet.GraphChanged, sheet), nil
}
