package exporter

import (
	"context"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/registry"
	"git.home.luguber.info/inful/patchexport/internal/shell"
	"git.home.luguber.info/inful/patchexport/internal/styles"
)

// Pipeline returns the export stages in execution order.
func Pipeline() []StageDef {
	return []StageDef{
		{StageBackup, stageBackup},
		{StageRestore, stageRestore},
		{StageHoistScripts, stageHoistScripts},
		{StageExtractStyles, stageExtractStyles},
		{StageLinkStylesheet, stageLinkStylesheet},
		{StageInjectContent, stageInjectContent},
		{StagePatchRegistry, stagePatchRegistry},
	}
}

func stageBackup(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := shell.EnsureBackup(rs.Layout.HTMLPath, rs.Layout.BackupPath)
	return c.Erase(), err
}

func stageRestore(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := shell.Restore(rs.Layout.BackupPath, rs.Layout.HTMLPath)
	return c.Erase(), err
}

func stageHoistScripts(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := shell.HoistScripts(rs.Layout.HTMLPath)
	return c.Erase(), err
}

func stageExtractStyles(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := styles.Extract(rs.Layout.GraphPath, rs.Layout.CSSPath, rs.Config.Nodes.Style)
	return c.Erase(), err
}

func stageLinkStylesheet(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := shell.LinkStylesheet(rs.Layout.HTMLPath, rs.Layout.CSSHref)
	return c.Erase(), err
}

func stageInjectContent(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := rs.Injector.Inject(rs.Layout.GraphPath, rs.Layout.HTMLPath)
	return foundation.ChangedIf(c.Changed || c.Artifact.GraphChanged, any(c.Artifact)), err
}

func stagePatchRegistry(_ context.Context, rs *RunState) (foundation.Change[any], error) {
	c, err := registry.PatchDefaults(rs.Layout.RegistryPath, rs.Config.Registry.NodeTypes)
	if err != nil {
		return c.Erase(), err
	}
	if !c.Changed && !rs.Config.Registry.AllowUnchanged {
		return c.Erase(), errors.NoMatch("no matching patterns found to update in registry").
			WithContext("path", rs.Layout.RegistryPath).Build()
	}
	return c.Erase(), nil
}
