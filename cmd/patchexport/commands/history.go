package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit     int    `short:"n" help:"Number of runs to show" default:"20"`
	Project   string `help:"Only show runs of this project folder"`
	HistoryDB string `name:"history-db" help:"SQLite database to read (default: history.path from config)"`
	Stages    bool   `help:"Print per-stage results"`

	out io.Writer `kong:"-"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	path := h.HistoryDB
	if path == "" {
		path = cfg.History.Path
	}
	if path == "" {
		return errors.ConfigError("no history database configured (set history.path or --history-db)").Build()
	}
	if _, err := os.Stat(path); err != nil {
		return errors.WrapError(err, errors.CategoryMissingInput, "history database not found").
			WithContext("path", path).Build()
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(g.ctx(), h.Project, h.Limit)
	if err != nil {
		return err
	}
	out := h.out
	if out == nil {
		out = os.Stdout
	}
	return printRuns(out, runs, h.Stages)
}

func printRuns(out io.Writer, runs []history.Run, stages bool) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded.")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tOUTCOME\tDURATION\tPROJECT\tRUN ID")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Format(time.RFC3339), r.Outcome, r.Duration.Round(time.Millisecond), r.Project, r.ID)
		if r.Error != "" {
			fmt.Fprintf(tw, "\t\terror: %s\t\t\n", r.Error)
		}
		if !stages {
			continue
		}
		for _, s := range r.Stages {
			changed := ""
			if s.Changed {
				changed = " (changed)"
			}
			fmt.Fprintf(tw, "\t%s\t%dms\t%s%s\t\n", s.Result, s.DurationMS, s.Name, changed)
		}
	}
	return tw.Flush()
}
