package commands

import (
	"os"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/exporter"
)

// RestoreCmd implements the 'restore' command.
type RestoreCmd struct {
	ProjectArg
	BackupName string `name:"backup-name" help:"Backup file name for index.html (default index_bck.html)"`
}

func (r *RestoreCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if r.BackupName != "" {
		cfg.BackupName = r.BackupName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	_, err = exporter.New(cfg, exporter.WithOutput(os.Stdout)).Restore(r.resolve(cfg))
	return err
}
