package exporter

import (
	"time"

	"git.home.luguber.info/inful/patchexport/internal/history"
)

// Outcome is the final status of a run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeCanceled Outcome = "canceled"
)

// StageRecord is the recorded result of one executed stage.
type StageRecord struct {
	Name     StageName
	Result   StageResult
	Changed  bool
	Duration time.Duration
	Err      error
}

// Report summarizes one export run.
type Report struct {
	RunID   string
	Project string
	Start   time.Time
	End     time.Time
	Outcome Outcome
	// SkipReason is set when the run had nothing to export.
	SkipReason string
	Stages     []StageRecord
	Err        error
}

func newReport(runID, project string, start time.Time) *Report {
	return &Report{RunID: runID, Project: project, Start: start}
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Changed reports whether any stage modified project files.
func (r *Report) Changed() bool {
	for _, s := range r.Stages {
		if s.Changed {
			return true
		}
	}
	return false
}

// Stage returns the record of the named stage, if it ran.
func (r *Report) Stage(name StageName) (StageRecord, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageRecord{}, false
}

func (r *Report) record(rec StageRecord) { r.Stages = append(r.Stages, rec) }

func (r *Report) finish(end time.Time) {
	r.End = end
	switch {
	case r.SkipReason != "":
		r.Outcome = OutcomeSkipped
	case r.Err == nil:
		r.Outcome = OutcomeSuccess
	default:
		r.Outcome = OutcomeFailed
		for _, s := range r.Stages {
			if s.Result == StageResultCanceled {
				r.Outcome = OutcomeCanceled
			}
		}
	}
}

// HistoryRun converts the report into a history ledger entry.
func (r *Report) HistoryRun() history.Run {
	run := history.Run{
		ID:        r.RunID,
		Project:   r.Project,
		Outcome:   string(r.Outcome),
		StartedAt: r.Start,
		Duration:  r.Duration(),
		Stages:    make([]history.Stage, 0, len(r.Stages)),
	}
	if r.Err != nil {
		run.Error = r.Err.Error()
	}
	for _, s := range r.Stages {
		hs := history.Stage{
			Name:       string(s.Name),
			Result:     string(s.Result),
			Changed:    s.Changed,
			DurationMS: s.Duration.Milliseconds(),
		}
		if s.Err != nil {
			hs.Error = s.Err.Error()
		}
		run.Stages = append(run.Stages, hs)
	}
	return run
}
