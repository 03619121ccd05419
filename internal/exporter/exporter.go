// Package exporter runs the patch export pipeline over a project folder.
package exporter

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/content"
	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
	"git.home.luguber.info/inful/patchexport/internal/metrics"
	"git.home.luguber.info/inful/patchexport/internal/project"
	"git.home.luguber.info/inful/patchexport/internal/registry"
	"git.home.luguber.info/inful/patchexport/internal/shell"
)

// Exporter turns an exported patch folder into a self-contained page.
type Exporter struct {
	cfg      *config.Config
	recorder metrics.Recorder
	out      io.Writer
	stages   []StageDef
	now      func() time.Time
	newID    func() string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Exporter) { e.recorder = r }
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(e *Exporter) { e.out = w }
}

// New creates an Exporter for the given configuration.
func New(cfg *config.Config, opts ...Option) *Exporter {
	e := &Exporter{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		out:      io.Discard,
		stages:   Pipeline(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProjectOptions maps the configuration onto project naming conventions.
func (e *Exporter) ProjectOptions() project.Options {
	opts := project.DefaultOptions()
	opts.BackupName = e.cfg.BackupName
	opts.ScriptDir = e.cfg.Graph.Dir
	opts.BackupMarker = e.cfg.Graph.BackupMarker
	opts.RegistryName = e.cfg.Registry.File
	opts.CSSOut = e.cfg.CSSOut
	return opts
}

// Injector builds the content injector for the configured node types.
func (e *Exporter) Injector() *content.Injector {
	return content.NewInjector(e.cfg.Anchors.CanvasID,
		content.Wrapped{Type: e.cfg.Nodes.Wrapped},
		content.Raw{Type: e.cfg.Nodes.Raw},
		content.NewMarkdown(e.cfg.Nodes.Markdown),
	)
}

// Run executes the full pipeline on folder. A folder without a graph file is
// reported as skipped with a nil error. On failure the report names the
// failed stage and the returned error is a *StageError.
func (e *Exporter) Run(ctx context.Context, folder string) (*Report, error) {
	rep := newReport(e.newID(), folder, e.now())
	log := slog.With(logfields.RunID(rep.RunID), logfields.Project(folder))
	fmt.Fprintf(e.out, "Starting patch export in %s\n", folder)

	err := e.run(ctx, folder, rep)
	rep.Err = err
	rep.finish(e.now())

	e.recorder.ObserveRunDuration(rep.Duration())
	e.recorder.IncRunOutcome(string(rep.Outcome))

	switch rep.Outcome {
	case OutcomeSuccess:
		fmt.Fprintln(e.out, "All operations completed successfully.")
		log.Info("Export finished", logfields.Outcome(string(rep.Outcome)), logfields.Changed(rep.Changed()))
	case OutcomeSkipped:
		fmt.Fprintf(e.out, "No patch JSON file found in %s\n", filepath.Join(folder, e.cfg.Graph.Dir))
		log.Info("Export skipped", logfields.Outcome(string(rep.Outcome)), slog.String("reason", rep.SkipReason))
	default:
		var se *StageError
		if stderrors.As(err, &se) {
			fmt.Fprintf(e.out, "Failed at stage %s.\n", se.Stage)
		}
		log.Error("Export finished", logfields.Outcome(string(rep.Outcome)), logfields.Error(err))
	}
	return rep, err
}

func (e *Exporter) run(ctx context.Context, folder string, rep *Report) error {
	layout, err := project.Locate(folder, e.ProjectOptions())
	if stderrors.Is(err, project.ErrNoGraph) {
		rep.SkipReason = "no_graph"
		return nil
	}
	if err != nil {
		return err
	}
	rs := &RunState{Layout: layout, Config: e.cfg, Injector: e.Injector(), Report: rep}
	return RunStages(ctx, rs, e.stages, e.recorder)
}

// Restore copies the backup over index.html without running the pipeline.
func (e *Exporter) Restore(folder string) (foundation.Change[string], error) {
	opts := e.ProjectOptions()
	backup := filepath.Join(folder, opts.BackupName)
	target := filepath.Join(folder, opts.ShellName)
	c, err := shell.Restore(backup, target)
	if err == nil {
		fmt.Fprintf(e.out, "Restored %s from backup.\n", target)
	}
	return c, err
}

// PatchRegistry rewrites the node-type registry of folder only. Unlike the
// pipeline stage, finding nothing to patch is not an error here.
func (e *Exporter) PatchRegistry(folder string) (foundation.Change[registry.Patch], error) {
	opts := e.ProjectOptions()
	path := filepath.Join(folder, opts.ScriptDir, opts.RegistryName)
	c, err := registry.PatchDefaults(path, e.cfg.Registry.NodeTypes)
	if err != nil {
		return c, err
	}
	if c.Changed {
		fmt.Fprintf(e.out, "Updated 'inExported' to true for specified ops in %s\n", path)
	} else {
		fmt.Fprintf(e.out, "No matching patterns found to update in %s\n", path)
	}
	return c, nil
}
