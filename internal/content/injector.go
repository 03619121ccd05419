package content

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/htmldoc"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
	"git.home.luguber.info/inful/patchexport/internal/patchgraph"
)

// Fragment is the outcome of one strategy.
type Fragment struct {
	Strategy  string
	Operators []string
	Markup    string
	// Present is true when the markup was already in the shell.
	Present bool
}

// Injection summarizes one Inject call.
type Injection struct {
	Fragments    []Fragment
	GraphChanged bool
}

// Injector places rendered node markup before the canvas element.
type Injector struct {
	Strategies []Strategy
	Canvas     htmldoc.Anchor
}

// NewInjector creates an injector anchored on the canvas with the given id.
func NewInjector(canvasID string, strategies ...Strategy) *Injector {
	return &Injector{Strategies: strategies, Canvas: htmldoc.Canvas(canvasID)}
}

// Inject renders every strategy's operators from the graph at graphPath into
// the shell at htmlPath. Change.Changed reports whether the shell was
// rewritten; Injection.GraphChanged whether exported flags were persisted.
func (in *Injector) Inject(graphPath, htmlPath string) (foundation.Change[Injection], error) {
	var result Injection

	g, err := patchgraph.Load(graphPath)
	if err != nil {
		return foundation.Unmodified(result), err
	}
	doc, err := htmldoc.Load(htmlPath)
	if err != nil {
		return foundation.Unmodified(result), err
	}
	if err := doc.Require(in.Canvas); err != nil {
		return foundation.Unmodified(result), errors.WrapError(err, errors.CategoryMissingAnchor, "cannot inject node markup").
			WithContext("path", htmlPath).Build()
	}

	var exported []*patchgraph.Operator
	inserted := false
	for _, s := range in.Strategies {
		ops := g.Select(s.NodeType())
		if len(ops) == 0 {
			continue
		}
		markup, err := s.Render(ops)
		if err != nil {
			return foundation.Unmodified(result), errors.WrapError(err, errors.CategoryMalformedData, "failed to render node markup").
				WithContext("strategy", s.Name()).Build()
		}
		if markup == "" {
			slog.Debug("No markup to inject", slog.String("strategy", s.Name()), logfields.NodeType(s.NodeType()))
			continue
		}

		frag := Fragment{Strategy: s.Name(), Markup: markup}
		for _, op := range ops {
			frag.Operators = append(frag.Operators, op.ID)
		}
		if doc.Contains(strings.TrimSpace(markup)) {
			frag.Present = true
			slog.Info("HTML content is already included", slog.String("strategy", s.Name()), logfields.Path(htmlPath))
		} else {
			if err := doc.InsertBefore(in.Canvas, markup); err != nil {
				return foundation.Unmodified(result), errors.WrapError(err, errors.CategoryMissingAnchor, "cannot inject node markup").
					WithContext("path", htmlPath).Build()
			}
			inserted = true
		}
		result.Fragments = append(result.Fragments, frag)
		exported = append(exported, ops...)
	}

	if inserted {
		if err := doc.Save(htmlPath); err != nil {
			return foundation.Unmodified(result), err
		}
		slog.Info("HTML content injected", logfields.Path(htmlPath), logfields.Count(len(result.Fragments)))
	}

	for _, op := range exported {
		if op.MarkExported() {
			slog.Debug("Marked operator exported", logfields.Operator(op.ID), logfields.Path(graphPath))
			result.GraphChanged = true
		}
	}
	if result.GraphChanged {
		if err := g.Save(graphPath); err != nil {
			return foundation.ChangedIf(inserted, result), err
		}
		slog.Info("Graph updated with exported markup nodes", logfields.Path(graphPath), logfields.Count(len(exported)))
	}

	return foundation.ChangedIf(inserted, result), nil
}
