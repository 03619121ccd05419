package htmldoc

// Anchor names an insertion point in the shell.
type Anchor struct {
	Name  string
	match func(Region) bool
}

// HeadClose resolves to the closing head tag.
var HeadClose = Anchor{
	Name: "closing </head>",
	match: func(r Region) bool {
		return r.Kind == RegionEndTag && r.Tag == "head"
	},
}

// Canvas resolves to the opening tag of the canvas element with the given id.
func Canvas(id string) Anchor {
	return Anchor{
		Name: `<canvas id="` + id + `">`,
		match: func(r Region) bool {
			if !r.isElement("canvas") {
				return false
			}
			v, ok := r.Attr("id")
			return ok && v == id
		},
	}
}
