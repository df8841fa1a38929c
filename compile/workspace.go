package compile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/SatelliteDish/Novel/syntax"
)

// Workspace keeps the latest compiled unit of every Novel file under a root
// directory. It is safe for concurrent use.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []syntax.Option
	workers int
	units   map[string]*Unit
}

func NewWorkspace(rootDir string, workers int, opts ...syntax.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		workers: workers,
		units:   make(map[string]*Unit),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll compiles every Novel file below the root directory. Hidden
// directories are skipped.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := FindSources(w.rootDir)
	if err != nil {
		return err
	}
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warningf("read %s: %s", path, err)
			continue
		}
		sources = append(sources, Source{Name: path, Text: string(content)})
	}

	units, err := CompileAll(ctx, sources, w.workers, w.opts...)

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, u := range units {
		if u != nil {
			w.units[u.Name] = u
		}
	}
	return err
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, string(content))
	return nil
}

// UpdateFile recompiles path from content and returns the new unit.
func (w *Workspace) UpdateFile(path, content string) *Unit {
	u := Compile(path, content, w.opts...)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.units[path] = u
	return u
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.units, path)
}

func (w *Workspace) GetFile(path string) *Unit {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.units[path]
}

// Units returns every unit sorted by name.
func (w *Workspace) Units() []*Unit {
	w.mu.RLock()
	defer w.mu.RUnlock()

	units := make([]*Unit, 0, len(w.units))
	for _, u := range w.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].Name < units[j].Name
	})
	return units
}

// NodeAtPoint returns the innermost node of path's tree whose token covers
// the byte offset, or nil.
func (w *Workspace) NodeAtPoint(path string, offset int) *syntax.Node {
	w.mu.RLock()
	defer w.mu.RUnlock()

	u := w.units[path]
	if u == nil || u.Tree == nil {
		return nil
	}
	return NodeAt(u.Tree, offset)
}

// NodeAt returns the innermost node of tree whose token covers the byte
// offset, or nil. For an operator the whole subexpression it builds is
// returned.
func NodeAt(tree *syntax.Node, offset int) *syntax.Node {
	var found *syntax.Node
	tree.Walk(func(n *syntax.Node) bool {
		if tok := n.Token; tok.Offset <= offset && offset < tok.End() {
			found = n
		}
		return true
	})
	return found
}

// FindSources lists the Novel files below root in lexical order.
func FindSources(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Extension {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
