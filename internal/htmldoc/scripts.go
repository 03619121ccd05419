package htmldoc

import "strings"

// RemoveExternalScripts removes every empty script element that loads an
// external source and returns the removed tags in document order, each with
// a defer attribute added when it had none. The whitespace line leading up to
// a removed tag goes with it.
func (d *Document) RemoveExternalScripts() []string {
	var (
		tags []string
		kept = make([]Region, 0, len(d.regions))
	)
	for i := 0; i < len(d.regions); i++ {
		r := d.regions[i]
		if !isExternalScript(r) || i+1 >= len(d.regions) || !isScriptEnd(d.regions[i+1]) {
			kept = append(kept, r)
			continue
		}
		tags = append(tags, withDefer(r)+d.regions[i+1].Raw)
		if n := len(kept); n > 0 && kept[n-1].Kind == RegionText {
			kept[n-1].Raw = trimLeadingLine(kept[n-1].Raw)
		}
		i++
	}
	d.regions = kept
	return tags
}

func isExternalScript(r Region) bool {
	if r.Kind != RegionStartTag || r.Tag != "script" {
		return false
	}
	_, ok := r.Attr("src")
	return ok
}

func isScriptEnd(r Region) bool {
	return r.Kind == RegionEndTag && r.Tag == "script"
}

const scriptOpen = len("<script")

func withDefer(r Region) string {
	if _, ok := r.Attr("defer"); ok {
		return r.Raw
	}
	return r.Raw[:scriptOpen] + " defer" + r.Raw[scriptOpen:]
}

// trimLeadingLine drops trailing blanks and one line break from s.
func trimLeadingLine(s string) string {
	t := strings.TrimRight(s, " \t")
	if !strings.HasSuffix(t, "\n") {
		return s
	}
	t = strings.TrimSuffix(t, "\n")
	return strings.TrimSuffix(t, "\r")
}
