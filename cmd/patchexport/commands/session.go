package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/exporter"
	"git.home.luguber.info/inful/patchexport/internal/history"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
	"git.home.luguber.info/inful/patchexport/internal/metrics"
)

// ProjectArg is the optional patch folder argument shared by project commands.
type ProjectArg struct {
	Project string `arg:"" optional:"" help:"Patch folder (default: config project or patch/my-patch)"`
}

func (p ProjectArg) resolve(cfg *config.Config) string {
	switch {
	case p.Project != "":
		return p.Project
	case cfg.Project != "":
		return cfg.Project
	default:
		return DefaultProject
	}
}

// ExportFlags override configuration keys for commands that run the pipeline.
type ExportFlags struct {
	CSSOut         string `name:"css-out" help:"Stylesheet path relative to the project (default style/style.css)"`
	BackupName     string `name:"backup-name" help:"Backup file name for index.html (default index_bck.html)"`
	CanvasID       string `name:"canvas-id" help:"Id of the canvas element content is injected before (default glcanvas)"`
	AllowUnchanged bool   `name:"allow-unchanged" help:"Do not fail when the registry has nothing left to patch"`
	MetricsFile    string `name:"metrics-file" help:"Write Prometheus metrics to this textfile after each run"`
	HistoryDB      string `name:"history-db" help:"Record runs in this SQLite database"`
}

func (f ExportFlags) apply(cfg *config.Config) error {
	if f.CSSOut != "" {
		cfg.CSSOut = f.CSSOut
	}
	if f.BackupName != "" {
		cfg.BackupName = f.BackupName
	}
	if f.CanvasID != "" {
		cfg.Anchors.CanvasID = f.CanvasID
	}
	if f.AllowUnchanged {
		cfg.Registry.AllowUnchanged = true
	}
	if f.MetricsFile != "" {
		cfg.Metrics.Textfile = f.MetricsFile
	}
	if f.HistoryDB != "" {
		cfg.History.Path = f.HistoryDB
	}
	return cfg.Validate()
}

// session bundles the exporter with its optional metrics and history sinks.
type session struct {
	cfg   *config.Config
	exp   *exporter.Exporter
	prom  *metrics.PrometheusRecorder
	store *history.Store
}

func openSession(cfg *config.Config, opts ...exporter.Option) (*session, error) {
	s := &session{cfg: cfg}
	if cfg.Metrics.Textfile != "" {
		s.prom = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, exporter.WithRecorder(s.prom))
	}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	s.exp = exporter.New(cfg, opts...)
	return s, nil
}

// export runs the pipeline and persists the run to the configured sinks.
// Sink failures are logged and never change the run result.
func (s *session) export(ctx context.Context, folder string) (*exporter.Report, error) {
	rep, err := s.exp.Run(ctx, folder)
	if s.store != nil {
		// The run context may already be canceled; the record should still land.
		if herr := s.store.Append(context.WithoutCancel(ctx), rep.HistoryRun()); herr != nil {
			slog.Error("Failed to record run history", logfields.RunID(rep.RunID), logfields.Error(herr))
		}
	}
	if s.prom != nil {
		if merr := s.prom.WriteTextfile(s.cfg.Metrics.Textfile); merr != nil {
			slog.Error("Failed to write metrics textfile", logfields.Path(s.cfg.Metrics.Textfile), logfields.Error(merr))
		}
	}
	return rep, err
}

func (s *session) close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		slog.Warn("Failed to close history database", logfields.Error(err))
	}
}
