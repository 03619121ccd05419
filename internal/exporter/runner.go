package exporter

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
	"git.home.luguber.info/inful/patchexport/internal/metrics"
)

// RunStages executes stages in order, recording timing and stopping on the
// first error. Files written by completed stages are left in place.
func RunStages(ctx context.Context, rs *RunState, stages []StageDef, recorder metrics.Recorder) error {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name,
				errors.WrapError(ctx.Err(), errors.CategoryCanceled, "export canceled").Build())
			rs.Report.record(StageRecord{Name: st.Name, Result: StageResultCanceled, Err: se.Err})
			recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			slog.Warn("Export canceled", logfields.Stage(string(st.Name)), logfields.RunID(rs.Report.RunID))
			return se
		default:
		}

		t0 := time.Now()
		change, err := st.Fn(ctx, rs)
		dur := time.Since(t0)

		recorder.ObserveStageDuration(string(st.Name), dur)
		rec := StageRecord{Name: st.Name, Changed: change.Changed, Duration: dur}

		if err != nil {
			rec.Result = StageResultFailed
			rec.Err = err
			rs.Report.record(rec)
			recorder.IncStageResult(string(st.Name), metrics.ResultFailed)
			slog.Error("Stage failed",
				logfields.Stage(string(st.Name)),
				logfields.RunID(rs.Report.RunID),
				logfields.DurationMS(float64(dur.Microseconds())/1000),
				logfields.Error(err))
			return newFatalStageError(st.Name, err)
		}

		rec.Result = StageResultSuccess
		rs.Report.record(rec)
		recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
		if change.Changed {
			recorder.IncStageChanged(string(st.Name))
		}
		slog.Info("Stage completed",
			logfields.Stage(string(st.Name)),
			logfields.RunID(rs.Report.RunID),
			logfields.Changed(change.Changed),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
