package shell

import (
	"log/slog"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/htmldoc"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
)

// StylesheetLink is the tag inserted before the closing head tag.
func StylesheetLink(href string) string {
	return "\n    <link rel=\"stylesheet\" type=\"text/css\" href=\"" + href + "\">\n"
}

// LinkStylesheet references href from the head of the document at
// htmlPath. A byte-identical link already present leaves the file alone.
func LinkStylesheet(htmlPath, href string) (foundation.Change[string], error) {
	link := StylesheetLink(href)
	doc, err := htmldoc.Load(htmlPath)
	if err != nil {
		return foundation.Unmodified(link), err
	}
	if doc.Contains(link) {
		slog.Info("Stylesheet link already exists", logfields.Path(htmlPath))
		return foundation.Unmodified(link), nil
	}
	if err := doc.InsertBefore(htmldoc.HeadClose, link); err != nil {
		return foundation.Unmodified(link), err
	}
	if err := doc.Save(htmlPath); err != nil {
		return foundation.Unmodified(link), err
	}
	slog.Info("Stylesheet linked", logfields.Path(htmlPath), slog.String("href", href))
	return foundation.Modified(link), nil
}
