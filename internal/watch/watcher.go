// Package watch re-runs the export whenever the patch graph changes.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/logfields"
)

// Trigger names what started a run.
type Trigger string

const (
	TriggerInitial  Trigger = "initial"
	TriggerChange   Trigger = "change"
	TriggerInterval Trigger = "interval"
)

// RunFunc performs one export. Its error is logged; watching continues.
type RunFunc func(ctx context.Context, trigger Trigger) error

// Options configures a Watcher.
type Options struct {
	// Dir is the directory holding the watched files.
	Dir string
	// Match selects the files in Dir whose content triggers a run.
	Match func(name string) bool
	// Debounce is the quiet period after the last event before a run.
	Debounce time.Duration
	// Interval schedules an unconditional run; zero disables it.
	Interval time.Duration
}

// Watcher serializes export runs triggered by file changes and an optional
// schedule.
type Watcher struct {
	opts    Options
	run     RunFunc
	watcher *fsnotify.Watcher

	runMu    sync.Mutex
	stateMu  sync.Mutex
	state    string // fingerprint of the matched files after the last run
	runs     int
	changeCh chan struct{}
}

// New creates a watcher over opts.Dir.
func New(opts Options, run RunFunc) (*Watcher, error) {
	if opts.Match == nil {
		opts.Match = func(string) bool { return true }
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	abs, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watch directory").
			WithContext("path", opts.Dir).Build()
	}
	opts.Dir = abs

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}
	if err := fw.Add(abs); err != nil {
		_ = fw.Close()
		return nil, errors.WrapError(err, errors.CategoryMissingInput, "failed to watch directory").
			WithContext("path", abs).Build()
	}
	return &Watcher{opts: opts, run: run, watcher: fw, changeCh: make(chan struct{}, 1)}, nil
}

// Run performs an initial export and then blocks, re-exporting on change,
// until ctx is done. It returns only after any in-flight export has finished.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	slog.Info("Starting watch", logfields.Path(w.opts.Dir),
		slog.Duration("debounce", w.opts.Debounce), slog.Duration("interval", w.opts.Interval))
	w.export(ctx, TriggerInitial)

	if w.opts.Interval > 0 {
		s, err := newScheduler(ctx, w.opts.Interval, func() { w.export(ctx, TriggerInterval) })
		if err != nil {
			return err
		}
		defer s.stop()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.debounceLoop(loopCtx)
	}()

	err := w.eventLoop(ctx)
	cancel()
	wg.Wait()
	return err
}

// Runs returns how many exports have completed.
func (w *Watcher) Runs() int {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	return w.runs
}

func (w *Watcher) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watch")
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.opts.Match(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Graph change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			select {
			case w.changeCh <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// debounceLoop runs one export per burst of change events. The export runs
// on this goroutine so Run can wait for it.
func (w *Watcher) debounceLoop(ctx context.Context) {
	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.changeCh:
			timer.Reset(w.opts.Debounce)
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

// onChange exports only when the matched files differ from what the last
// run left behind, so the exporter's own writes do not retrigger it.
func (w *Watcher) onChange(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	current := w.fingerprint()
	w.stateMu.Lock()
	same := current == w.state
	w.stateMu.Unlock()
	if same {
		slog.Debug("Graph content unchanged since last export", logfields.Path(w.opts.Dir))
		return
	}
	w.exportLocked(ctx, TriggerChange)
}

func (w *Watcher) export(ctx context.Context, trigger Trigger) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	w.exportLocked(ctx, trigger)
}

// exportLocked runs one export; the caller holds runMu.
func (w *Watcher) exportLocked(ctx context.Context, trigger Trigger) {
	if err := w.run(ctx, trigger); err != nil {
		slog.Error("Export failed; still watching", slog.String("trigger", string(trigger)), logfields.Error(err))
	}

	state := w.fingerprint()
	w.stateMu.Lock()
	w.state = state
	w.runs++
	w.stateMu.Unlock()
}

// fingerprint hashes the names and contents of the matched files.
func (w *Watcher) fingerprint() string {
	entries, err := os.ReadDir(w.opts.Dir)
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && w.opts.Match(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(w.opts.Dir, name))
		if err != nil {
			continue
		}
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
