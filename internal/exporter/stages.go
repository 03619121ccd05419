package exporter

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/patchexport/internal/config"
	"git.home.luguber.info/inful/patchexport/internal/content"
	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/project"
)

// StageName is a strongly-typed identifier for a pipeline stage.
type StageName string

const (
	StageBackup         StageName = "backup"
	StageRestore        StageName = "restore"
	StageHoistScripts   StageName = "hoist-scripts"
	StageExtractStyles  StageName = "extract-styles"
	StageLinkStylesheet StageName = "link-stylesheet"
	StageInjectContent  StageName = "inject-content"
	StagePatchRegistry  StageName = "patch-registry"
)

// StageResult enumerates recorded stage outcomes.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFailed   StageResult = "failed"
	StageResultCanceled StageResult = "canceled"
)

// StageErrorKind enumerates stage error kinds.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError names the stage that failed and wraps its cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// RunState carries what every stage of one run needs.
type RunState struct {
	Layout   *project.Layout
	Config   *config.Config
	Injector *content.Injector
	Report   *Report
}

// Stage executes one step of the pipeline.
type Stage func(ctx context.Context, rs *RunState) (foundation.Change[any], error)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
