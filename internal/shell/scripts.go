package shell

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/htmldoc"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
)

// HoistScripts moves every external script tag of the document at htmlPath
// into the head, in encounter order, marking each one deferred.
func HoistScripts(htmlPath string) (foundation.Change[[]string], error) {
	doc, err := htmldoc.Load(htmlPath)
	if err != nil {
		return foundation.Unmodified[[]string](nil), err
	}
	if err := doc.Require(htmldoc.HeadClose); err != nil {
		return foundation.Unmodified[[]string](nil), err
	}

	before := doc.String()
	tags := doc.RemoveExternalScripts()
	var block strings.Builder
	for _, tag := range tags {
		block.WriteString("\n    ")
		block.WriteString(tag)
	}
	if err := doc.InsertBefore(htmldoc.HeadClose, block.String()); err != nil {
		return foundation.Unmodified(tags), err
	}

	if doc.String() == before {
		slog.Info("Scripts already in place", logfields.Path(htmlPath), logfields.Count(len(tags)))
		return foundation.Unmodified(tags), nil
	}
	if err := doc.Save(htmlPath); err != nil {
		return foundation.Unmodified(tags), err
	}
	slog.Info("Scripts moved to head", logfields.Path(htmlPath), logfields.Count(len(tags)))
	return foundation.Modified(tags), nil
}
