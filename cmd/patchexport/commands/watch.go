package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/exporter"
	"git.home.luguber.info/inful/patchexport/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ProjectArg
	ExportFlags
	Debounce time.Duration `help:"Quiet period after a graph change before exporting (default 2s)"`
	Interval time.Duration `help:"Also export on this interval (0 disables)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := w.apply(cfg); err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}
	if w.Interval > 0 {
		cfg.Watch.Interval = w.Interval
	}

	s, err := openSession(cfg, exporter.WithOutput(os.Stdout))
	if err != nil {
		return err
	}
	defer s.close()

	folder := w.resolve(cfg)
	watcher, err := watch.New(watch.Options{
		Dir:      filepath.Join(folder, cfg.Graph.Dir),
		Match:    graphMatcher(cfg),
		Debounce: cfg.Watch.Debounce,
		Interval: cfg.Watch.Interval,
	}, func(ctx context.Context, _ watch.Trigger) error {
		_, err := s.export(ctx, folder)
		return err
	})
	if err != nil {
		return err
	}
	return watcher.Run(g.ctx())
}

// graphMatcher selects the files project discovery would consider graphs.
func graphMatcher(cfg *config.Config) func(string) bool {
	return func(name string) bool {
		if !strings.HasSuffix(name, ".json") {
			return false
		}
		return cfg.Graph.BackupMarker == "" || !strings.Contains(name, cfg.Graph.BackupMarker)
	}
}
