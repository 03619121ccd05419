package commands

import (
	"os"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/exporter"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

// PatchRegistryCmd implements the 'patch-registry' command.
type PatchRegistryCmd struct {
	ProjectArg
	NodeTypes []string `name:"node-type" help:"Node type name to patch (repeatable; default ExternalCSS, SEODivElement)"`
	Strict    bool     `help:"Fail when nothing matched"`
}

func (p *PatchRegistryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if len(p.NodeTypes) > 0 {
		cfg.Registry.NodeTypes = p.NodeTypes
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	res, err := exporter.New(cfg, exporter.WithOutput(os.Stdout)).PatchRegistry(p.resolve(cfg))
	if err != nil {
		return err
	}
	if p.Strict && !res.Changed {
		return errors.NoMatch("no matching patterns found to update in registry").
			WithContext("path", res.Artifact.Path).Build()
	}
	return nil
}
