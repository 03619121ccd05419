package htmldoc

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

// RegionKind classifies a region of the document.
type RegionKind int

const (
	RegionText RegionKind = iota
	RegionStartTag
	RegionEndTag
	RegionSelfClosingTag
	RegionComment
	RegionDoctype
	// RegionFragment is markup inserted by an export stage. It is kept opaque
	// until the document is written and parsed again.
	RegionFragment
)

// Region is one contiguous span of the source document.
type Region struct {
	Kind  RegionKind
	Tag   string
	Attrs []html.Attribute
	Raw   string
}

// Attr returns the value of the named attribute and whether it is present.
func (r Region) Attr(name string) (string, bool) {
	for _, a := range r.Attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (r Region) isElement(tag string) bool {
	return (r.Kind == RegionStartTag || r.Kind == RegionSelfClosingTag) && r.Tag == tag
}

// Document is a tokenized HTML shell.
type Document struct {
	regions []Region
}

// Parse splits src into regions.
func Parse(src string) *Document {
	z := html.NewTokenizer(strings.NewReader(src))
	d := &Document{}
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		consumed += len(raw)
		r := Region{Raw: raw}
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			r.Tag = tok.Data
			r.Attrs = tok.Attr
			r.Kind = tagKind(tt)
		case html.CommentToken:
			r.Kind = RegionComment
		case html.DoctypeToken:
			r.Kind = RegionDoctype
		default:
			r.Kind = RegionText
		}
		d.regions = append(d.regions, r)
	}
	if consumed < len(src) {
		d.regions = append(d.regions, Region{Kind: RegionText, Raw: src[consumed:]})
	}
	return d
}

func tagKind(tt html.TokenType) RegionKind {
	switch tt {
	case html.EndTagToken:
		return RegionEndTag
	case html.SelfClosingTagToken:
		return RegionSelfClosingTag
	default:
		return RegionStartTag
	}
}

// Load reads and parses the HTML file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingInput("HTML file not found").WithCause(err).WithContext("path", path).Build()
		}
		return nil, errors.FileSystemError("failed to read HTML file").WithCause(err).WithContext("path", path).Build()
	}
	return Parse(string(data)), nil
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	if err := os.WriteFile(path, []byte(d.String()), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write HTML file").WithContext("path", path).Build()
	}
	return nil
}

// String reassembles the document.
func (d *Document) String() string {
	var b strings.Builder
	for _, r := range d.regions {
		b.WriteString(r.Raw)
	}
	return b.String()
}

// Contains reports whether s occurs verbatim in the document.
func (d *Document) Contains(s string) bool {
	return strings.Contains(d.String(), s)
}

// Has reports whether the anchor resolves in the document.
func (d *Document) Has(a Anchor) bool {
	return d.find(a) >= 0
}

// Require fails with a missing_anchor error for the first anchor that does not resolve.
func (d *Document) Require(anchors ...Anchor) error {
	for _, a := range anchors {
		if !d.Has(a) {
			return errors.MissingAnchor("no " + a.Name + " tag found in the HTML document").
				WithContext("anchor", a.Name).
				Build()
		}
	}
	return nil
}

// InsertBefore places fragment immediately before the anchor.
func (d *Document) InsertBefore(a Anchor, fragment string) error {
	idx := d.find(a)
	if idx < 0 {
		return d.Require(a)
	}
	d.regions = slices.Insert(d.regions, idx, Region{Kind: RegionFragment, Raw: fragment})
	return nil
}

func (d *Document) find(a Anchor) int {
	for i, r := range d.regions {
		if a.match(r) {
			return i
		}
	}
	return -1
}
