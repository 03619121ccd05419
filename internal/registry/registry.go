// Package registry flips the default of the exported input in a static
// node-type registry script, so nodes created after an export start out
// exported.
//
// The rewrite is a regular-expression substitution over script source, not a
// parse. It matches a dotted path ending in the node type name followed,
// possibly across lines, by the first `inExported = op.inBool('exported', false)`
// declaration. Because the match is lazy and unanchored it can reach past the
// node's own definition into a later one when the node declares no such
// input; the fixtures under testdata pin the supported shapes.
package registry

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"git.home.luguber.info/inful/patchexport/internal/foundation"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
)

// Patch describes the rewrite of one registry script.
type Patch struct {
	Path string
	// Matches counts rewritten declarations per node type name.
	Matches map[string]int
}

// Pattern returns the expression matching an exported=false default for nodeType.
func Pattern(nodeType string) *regexp.Regexp {
	return regexp.MustCompile(`([\w.]+\.` + regexp.QuoteMeta(nodeType) + `[\s\S]*?inExported = op\.inBool\('exported',\s*)false`)
}

// Rewrite applies the substitution for every name, in order, and returns the
// new source with the per-name match counts.
func Rewrite(src string, nodeTypes []string) (string, map[string]int) {
	matches := make(map[string]int, len(nodeTypes))
	for _, name := range nodeTypes {
		re := Pattern(name)
		n := len(re.FindAllStringIndex(src, -1))
		if n == 0 {
			continue
		}
		matches[name] = n
		src = re.ReplaceAllString(src, "${1}true")
	}
	return src, matches
}

// PatchDefaults rewrites the registry at path. The file is written only when
// at least one name matched; otherwise the result is unchanged and the caller
// decides whether that is a failure.
func PatchDefaults(path string, nodeTypes []string) (foundation.Change[Patch], error) {
	patch := Patch{Path: path}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		b := errors.FileSystemError("cannot read registry script")
		if os.IsNotExist(err) {
			b = errors.MissingInput("cannot read registry script")
		}
		return foundation.Unmodified(patch), b.WithCause(err).WithContext("path", path).Build()
	}

	out, matches := Rewrite(string(data), nodeTypes)
	patch.Matches = matches
	if len(matches) == 0 {
		slog.Info("No matching patterns found to update", logfields.Path(path))
		return foundation.Unmodified(patch), nil
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return foundation.Unmodified(patch), errors.FileSystemError("failed to write registry script").WithCause(err).WithContext("path", path).Build()
	}
	for name, n := range matches {
		slog.Info("Updated exported default", logfields.Path(path), logfields.NodeType(name), logfields.Count(n))
	}
	return foundation.Modified(patch), nil
}
