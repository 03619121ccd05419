package commands

import (
	"os"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/exporter"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	ProjectArg
	ExportFlags
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := e.apply(cfg); err != nil {
		return err
	}

	s, err := openSession(cfg, exporter.WithOutput(os.Stdout))
	if err != nil {
		return err
	}
	defer s.close()

	_, err = s.export(g.ctx(), e.resolve(cfg))
	return err
}
