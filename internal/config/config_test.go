package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patchexport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "style/style.css", cfg.CSSOut)
	assert.Equal(t, "index_bck.html", cfg.BackupName)
	assert.Equal(t, "js", cfg.Graph.Dir)
	assert.Equal(t, "_backup.json", cfg.Graph.BackupMarker)
	assert.Equal(t, "ops.js", cfg.Registry.File)
	assert.Equal(t, []string{"ExternalCSS", "SEODivElement"}, cfg.Registry.NodeTypes)
	assert.False(t, cfg.Registry.AllowUnchanged)
	assert.Equal(t, NodesConfig{
		Style:    "ExternalCSS",
		Wrapped:  "SEODivElement",
		Raw:      "SEOHtmlFragment",
		Markdown: "SEOMarkdownElement",
	}, cfg.Nodes)
	assert.Equal(t, "glcanvas", cfg.Anchors.CanvasID)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Zero(t, cfg.Watch.Interval)
	assert.Empty(t, cfg.History.Path)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoad_Values(t *testing.T) {
	path := writeConfig(t, `project: patch/demo
css_out: css/main.css
registry:
  node_types: [ExternalCSS]
  allow_unchanged: true
nodes:
  wrapped: MyDiv
anchors:
  canvas_id: stage
watch:
  debounce: 500ms
  interval: 1m
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "patch/demo", cfg.Project)
	assert.Equal(t, "css/main.css", cfg.CSSOut)
	assert.Equal(t, []string{"ExternalCSS"}, cfg.Registry.NodeTypes)
	assert.True(t, cfg.Registry.AllowUnchanged)
	assert.Equal(t, "MyDiv", cfg.Nodes.Wrapped)
	assert.Equal(t, "ExternalCSS", cfg.Nodes.Style)
	assert.Equal(t, "stage", cfg.Anchors.CanvasID)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, time.Minute, cfg.Watch.Interval)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("PATCHEXPORT_TEST_PROJECT", "patch/from-env")
	path := writeConfig(t, "project: ${PATCHEXPORT_TEST_PROJECT}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "patch/from-env", cfg.Project)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "registry: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"absolute css_out", func(c *Config) { c.CSSOut = "/tmp/style.css" }},
		{"backup name with directory", func(c *Config) { c.BackupName = "old/index.html" }},
		{"empty node type list", func(c *Config) { c.Registry.NodeTypes = []string{} }},
		{"blank node type", func(c *Config) { c.Registry.NodeTypes = []string{"ExternalCSS", " "} }},
		{"blank wrapped node", func(c *Config) { c.Nodes.Wrapped = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patchexport.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "patch/my-patch", cfg.Project)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	require.NoError(t, Init(path, true))
}
