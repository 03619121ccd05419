package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyProject    = "project"
	KeyPath       = "path"
	KeyOperator   = "operator"
	KeyNodeType   = "node_type"
	KeyCount      = "count"
	KeyChanged    = "changed"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Project(dir string) slog.Attr    { return slog.String(KeyProject, dir) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Operator(id string) slog.Attr    { return slog.String(KeyOperator, id) }
func NodeType(name string) slog.Attr  { return slog.String(KeyNodeType, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Changed(c bool) slog.Attr        { return slog.Bool(KeyChanged, c) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
