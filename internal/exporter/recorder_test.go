package exporter

import (
	"time"

	"git.home.luguber.info/inful/patchexport/internal/metrics"
)

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[metrics.ResultLabel]int
	stageChanges   map[string]int
	runDurations   int
	runOutcomes    map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[metrics.ResultLabel]int{},
		stageChanges:   map[string]int{},
		runOutcomes:    map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveRunDuration(_ time.Duration) { t.runDurations++ }
func (t *testRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[metrics.ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncStageChanged(stage string) { t.stageChanges[stage]++ }
func (t *testRecorder) IncRunOutcome(outcome string)  { t.runOutcomes[outcome]++ }
