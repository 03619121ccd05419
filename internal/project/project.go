// Package project locates the files of an exported patch folder.
package project

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

// ErrNoGraph is returned by Locate when the script directory holds no graph
// file. It is not a stage failure: the export has nothing to do.
var ErrNoGraph = stderrors.New("no patch graph file found")

// Options controls the naming conventions used to find project files.
type Options struct {
	ShellName    string // HTML shell, "index.html"
	BackupName   string // backup of the shell, "index_bck.html"
	ScriptDir    string // "js"
	GraphExt     string // ".json"
	BackupMarker string // graph files containing this are skipped, "_backup.json"
	RegistryName string // "ops.js"
	CSSOut       string // stylesheet path relative to the project, "style/style.css"
}

// DefaultOptions returns the conventional layout.
func DefaultOptions() Options {
	return Options{
		ShellName:    "index.html",
		BackupName:   "index_bck.html",
		ScriptDir:    "js",
		GraphExt:     ".json",
		BackupMarker: "_backup.json",
		RegistryName: "ops.js",
		CSSOut:       "style/style.css",
	}
}

// Layout is the resolved set of paths for one project folder.
type Layout struct {
	Root         string
	HTMLPath     string
	BackupPath   string
	GraphPath    string
	RegistryPath string
	CSSPath      string
	// CSSHref is the stylesheet reference written into the shell.
	CSSHref string
}

// Locate resolves the layout of the project at root. It returns ErrNoGraph
// when the script directory contains no graph file.
func Locate(root string, opts Options) (*Layout, error) {
	scriptDir := filepath.Join(root, opts.ScriptDir)
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		category := errors.CategoryFileSystem
		if os.IsNotExist(err) {
			category = errors.CategoryMissingInput
		}
		return nil, errors.WrapError(err, category, "cannot list script directory").WithContext("path", scriptDir).Build()
	}

	graph := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, opts.GraphExt) {
			continue
		}
		if opts.BackupMarker != "" && strings.Contains(name, opts.BackupMarker) {
			continue
		}
		graph = name
		break
	}
	if graph == "" {
		return nil, ErrNoGraph
	}

	return &Layout{
		Root:         root,
		HTMLPath:     filepath.Join(root, opts.ShellName),
		BackupPath:   filepath.Join(root, opts.BackupName),
		GraphPath:    filepath.Join(scriptDir, graph),
		RegistryPath: filepath.Join(scriptDir, opts.RegistryName),
		CSSPath:      filepath.Join(root, filepath.FromSlash(opts.CSSOut)),
		CSSHref:      filepath.ToSlash(opts.CSSOut),
	}, nil
}
