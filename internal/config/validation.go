package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if filepath.IsAbs(c.CSSOut) || strings.HasPrefix(c.CSSOut, "/") {
		return errors.ValidationError("css_out must be relative to the project folder").
			WithContext("css_out", c.CSSOut).Build()
	}
	if filepath.IsAbs(c.BackupName) || strings.ContainsAny(c.BackupName, `/\`) {
		return errors.ValidationError("backup_name must be a plain file name").
			WithContext("backup_name", c.BackupName).Build()
	}
	if len(c.Registry.NodeTypes) == 0 {
		return errors.ValidationError("registry.node_types must not be empty").Build()
	}
	for _, name := range c.Registry.NodeTypes {
		if strings.TrimSpace(name) == "" {
			return errors.ValidationError("registry.node_types contains an empty name").Build()
		}
	}
	for key, name := range map[string]string{
		"nodes.style":    c.Nodes.Style,
		"nodes.wrapped":  c.Nodes.Wrapped,
		"nodes.raw":      c.Nodes.Raw,
		"nodes.markdown": c.Nodes.Markdown,
	} {
		if strings.TrimSpace(name) == "" {
			return errors.ValidationError("node type name must not be empty").WithContext("key", key).Build()
		}
	}
	return nil
}
