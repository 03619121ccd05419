package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/patchgraph"
)

const shellHTML = "<html><head></head><body>\n    <canvas id=\"glcanvas\"></canvas>\n</body></html>"

func decodeOps(t *testing.T, js string) *patchgraph.Graph {
	t.Helper()
	g, err := patchgraph.Decode([]byte(js))
	require.NoError(t, err)
	return g
}

func writeProject(t *testing.T, graph, html string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	gp := filepath.Join(dir, "patch.json")
	hp := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(gp, []byte(graph), 0o600))
	require.NoError(t, os.WriteFile(hp, []byte(html), 0o600))
	return gp, hp
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBlock(t *testing.T) {
	g := decodeOps(t, `{"ops": [
		{"objName": "Ops.User.SEODivElement", "id": "d1", "portsIn": [
			{"name": "value", "value": "<h1>a</h1>\n<p>b</p>"},
			{"name": "Style", "value": "color: red;\r\n\ntop: 0;"},
			{"name": "Visible", "value": true}
		]},
		{"objName": "Ops.User.SEODivElement", "id": "d2", "portsIn": [
			{"name": "value", "value": "<p>hi</p>"},
			{"name": "Style", "value": ""}
		]}
	]}`)

	assert.Equal(t,
		"<div data-op=\"d1\" class=\"cablesEle\" style=\"color: red; top: 0; visibility: visible; display: block;\">\n"+
			"        <h1>a</h1>\n        <p>b</p>\n    </div>\n",
		Block(g.Ops[:1]))
	assert.Equal(t,
		"<div data-op=\"d2\" class=\"cablesEle\" style=\" visibility: hidden; display: block;\">\n"+
			"        <p>hi</p>\n    </div>\n",
		Block(g.Ops[1:]))
}

func TestWrapped_RenderSharesOneContainer(t *testing.T) {
	g := decodeOps(t, `{"ops": [
		{"objName": "Ops.User.SEODivElement", "id": "d1", "portsIn": [
			{"name": "value", "value": "<h1>a</h1>\n"},
			{"name": "Style", "value": "color: red;"},
			{"name": "Visible", "value": true}
		]},
		{"objName": "Ops.User.SEODivElement", "id": "d2", "portsIn": [
			{"name": "value", "value": "<p>hi</p>"}
		]}
	]}`)

	out, err := Wrapped{Type: "SEODivElement"}.Render(g.Ops)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "<div "))
	assert.Equal(t,
		"<div data-op=\"d2\" class=\"cablesEle\" style=\"color: red; visibility: visible; display: block;\">\n"+
			"        <h1>a</h1>\n        <p>hi</p>\n    </div>\n",
		out)

	out, err = Wrapped{Type: "SEODivElement"}.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRaw_Render(t *testing.T) {
	g := decodeOps(t, `{"ops": [
		{"objName": "Ops.User.SEOHtmlFragment", "id": "r1", "portsIn": [{"name": "value", "value": "<nav>x</nav>"}]},
		{"objName": "Ops.User.SEOHtmlFragment", "id": "r2", "portsIn": [{"name": "value", "value": "<footer></footer>"}]}
	]}`)
	out, err := Raw{Type: "SEOHtmlFragment"}.Render(g.Ops)
	require.NoError(t, err)
	assert.Equal(t, "<nav>x</nav><footer></footer>", out)
}

func TestMarkdown_Render(t *testing.T) {
	g := decodeOps(t, `{"ops": [
		{"objName": "Ops.User.SEOMarkdownElement", "id": "m1", "portsIn": [{"name": "value", "value": "# Title\n\nSome *text* <span>raw</span>"}]}
	]}`)
	out, err := NewMarkdown("SEOMarkdownElement").Render(g.Ops)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>text</em>")
	assert.Contains(t, out, "<span>raw</span>")
}

const wrappedGraph = `{
  "ops": [
    {
      "objName": "Ops.User.me.SEODivElement",
      "id": "div1",
      "portsIn": [
        {"name": "value", "value": "<p>hi</p>"},
        {"name": "Style", "value": ""},
        {"name": "exported", "value": false}
      ]
    },
    {
      "objName": "Ops.Math.Sum",
      "id": "sum",
      "portsIn": [{"name": "exported", "value": false}]
    }
  ]
}`

func TestInject_Wrapped(t *testing.T) {
	gp, hp := writeProject(t, wrappedGraph, shellHTML)
	in := NewInjector("glcanvas", Wrapped{Type: "SEODivElement"})

	res, err := in.Inject(gp, hp)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Artifact.GraphChanged)
	require.Len(t, res.Artifact.Fragments, 1)
	assert.Equal(t, []string{"div1"}, res.Artifact.Fragments[0].Operators)

	html := read(t, hp)
	assert.Contains(t, html, "<body>\n    <div data-op=\"div1\" class=\"cablesEle\" style=\" visibility: hidden; display: block;\">\n        <p>hi</p>\n    </div>\n<canvas id=\"glcanvas\">")

	g, err := patchgraph.Load(gp)
	require.NoError(t, err)
	p, _ := g.Ops[0].Port(patchgraph.PortExported)
	assert.True(t, p.IsTrue())
	p, _ = g.Ops[1].Port(patchgraph.PortExported)
	assert.False(t, p.IsTrue(), "unrelated operator must keep its flag")

	// Second injection finds the block and changes nothing.
	res, err = in.Inject(gp, hp)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, res.Artifact.GraphChanged)
	assert.True(t, res.Artifact.Fragments[0].Present)
	assert.Equal(t, html, read(t, hp))
}

func TestInject_MissingCanvas(t *testing.T) {
	html := "<html><head></head><body></body></html>"
	gp, hp := writeProject(t, wrappedGraph, html)

	_, err := NewInjector("glcanvas", Wrapped{Type: "SEODivElement"}).Inject(gp, hp)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMissingAnchor))
	assert.Equal(t, html, read(t, hp))
	assert.Equal(t, wrappedGraph, read(t, gp), "flags stay untouched when nothing was injected")
}

func TestInject_RawEmptyReturnsEarly(t *testing.T) {
	graph := `{"ops": [{"objName": "Ops.User.SEOHtmlFragment", "id": "r1", "portsIn": [{"name": "value", "value": ""}]}]}`
	gp, hp := writeProject(t, graph, shellHTML)

	res, err := NewInjector("glcanvas", Raw{Type: "SEOHtmlFragment"}).Inject(gp, hp)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Artifact.Fragments)
	assert.Equal(t, shellHTML, read(t, hp))
	assert.Equal(t, graph, read(t, gp))
}

func TestInject_MissingCanvasWithoutMarkup(t *testing.T) {
	cases := map[string]string{
		"style nodes only": `{"ops": [{"objName": "Ops.User.ExternalCSS", "id": "c1", "portsIn": [{"name": "css code", "value": "a{}"}]}]}`,
		"empty raw value":  `{"ops": [{"objName": "Ops.User.SEOHtmlFragment", "id": "r1", "portsIn": [{"name": "value", "value": ""}]}]}`,
	}
	html := "<html><head></head><body><p>no canvas</p></body></html>"
	for name, graph := range cases {
		t.Run(name, func(t *testing.T) {
			gp, hp := writeProject(t, graph, html)

			_, err := NewInjector("glcanvas", Wrapped{Type: "SEODivElement"}, Raw{Type: "SEOHtmlFragment"}).Inject(gp, hp)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryMissingAnchor))
			assert.Equal(t, html, read(t, hp))
			assert.Equal(t, graph, read(t, gp))
		})
	}
}

func TestInject_RawPresenceCheckIsLiteral(t *testing.T) {
	graph := `{"ops": [{"objName": "Ops.User.SEOHtmlFragment", "id": "r1", "portsIn": [{"name": "value", "value": "<b>x</b>"}]}]}`
	// The fragment already occurs elsewhere in the shell, so it counts as present.
	html := "<html><body><b>x</b><canvas id=\"glcanvas\"></canvas></body></html>"
	gp, hp := writeProject(t, graph, html)

	res, err := NewInjector("glcanvas", Raw{Type: "SEOHtmlFragment"}).Inject(gp, hp)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.True(t, res.Artifact.Fragments[0].Present)
	assert.Equal(t, html, read(t, hp))
}

func TestInject_StrategiesInOrder(t *testing.T) {
	graph := `{"ops": [
		{"objName": "Ops.User.SEOHtmlFragment", "id": "r1", "portsIn": [{"name": "value", "value": "<nav></nav>"}]},
		{"objName": "Ops.User.SEODivElement", "id": "d1", "portsIn": [{"name": "value", "value": "text"}]}
	]}`
	gp, hp := writeProject(t, graph, shellHTML)

	res, err := NewInjector("glcanvas", Wrapped{Type: "SEODivElement"}, Raw{Type: "SEOHtmlFragment"}).Inject(gp, hp)
	require.NoError(t, err)
	require.Len(t, res.Artifact.Fragments, 2)
	assert.Equal(t, "wrapped", res.Artifact.Fragments[0].Strategy)
	assert.Equal(t, "raw", res.Artifact.Fragments[1].Strategy)

	html := read(t, hp)
	assert.Less(t, strings.Index(html, `data-op="d1"`), strings.Index(html, "<nav></nav>"))
	assert.Less(t, strings.Index(html, "<nav></nav>"), strings.Index(html, "<canvas"))
}
