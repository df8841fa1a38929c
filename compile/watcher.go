package compile

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Watcher polls a workspace's root directory and recompiles files whose
// modification time changed. OnChange, when set, is called with every unit
// that was recompiled.
type Watcher struct {
	OnChange func(*Unit)

	workspace    *Workspace
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewWatcher(w *Workspace, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

// Stop ends polling. Calling it again has no effect.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan recompiles new and modified files and forgets deleted ones. It
// returns the number of files recompiled.
func (w *Watcher) scan() int {
	current := make(map[string]bool)
	changed := 0

	filepath.Walk(w.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Extension {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return nil
		}
		w.modTimes[path] = info.ModTime()
		if err := w.workspace.ScanFile(path); err != nil {
			log.Warningf("rescan %s: %s", path, err)
			return nil
		}
		changed++
		if w.OnChange != nil {
			w.OnChange(w.workspace.GetFile(path))
		}
		return nil
	})

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.workspace.RemoveFile(path)
			log.Debugf("removed %s", path)
		}
	}
	return changed
}
