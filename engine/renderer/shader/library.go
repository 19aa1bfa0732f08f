package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
)

// ErrWatcherRunning is returned by Watch when the library is already watching.
var ErrWatcherRunning = errors.New("shader library is already watching")

// Library is a name-keyed set of shader programs with optional hot reload of file-based programs.
// All methods except the watcher goroutine run on the thread that owns the GPU context.
type Library interface {
	// Add stores p under its own name.
	//
	// Parameters:
	//   - p: the program
	//
	// Returns:
	//   - error: ErrDuplicateProgram if the name is taken
	Add(p Program) error

	// AddAs stores p under name.
	//
	// Parameters:
	//   - name: the key
	//   - p: the program
	//
	// Returns:
	//   - error: ErrDuplicateProgram if the name is taken
	AddAs(name string, p Program) error

	// Load builds a program from a combined "#type" file and stores it under its derived name.
	//
	// Parameters:
	//   - path: the source file
	//
	// Returns:
	//   - Program: the program, stored even when invalid
	//   - error: ErrDuplicateProgram if the name is taken
	Load(path string) (Program, error)

	// Get returns the program stored under name.
	//
	// Parameters:
	//   - name: the key
	//
	// Returns:
	//   - Program: the program
	//   - bool: false if no program is stored under name
	Get(name string) (Program, bool)

	// Exists reports whether a program is stored under name.
	//
	// Parameters:
	//   - name: the key
	//
	// Returns:
	//   - bool: true if the name is taken
	Exists(name string) bool

	// Names returns the stored names in sorted order.
	//
	// Returns:
	//   - []string: program names
	Names() []string

	// Watch starts watching the source files of every stored program. File changes are queued and
	// applied by ProcessReloads.
	//
	// Returns:
	//   - error: error if the watcher could not be created
	Watch() error

	// ProcessReloads rebuilds the programs whose files changed since the last call. Must be called
	// on the GPU thread, typically once per frame.
	//
	// Returns:
	//   - int: the number of programs successfully rebuilt
	ProcessReloads() int

	// Close stops the watcher and destroys every stored program.
	//
	// Returns:
	//   - error: error from closing the watcher
	Close() error
}

// library is the implementation of the Library interface.
type library struct {
	device  gpu.Device
	logger  *slog.Logger
	options []ProgramBuilderOption

	programs map[string]Program

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	// mu guards pending, which the watcher goroutine fills with changed paths.
	mu      sync.Mutex
	pending map[string]struct{}
}

var _ Library = &library{}

// NewLibrary creates an empty library. options are applied to every program built by Load. A
// WithLogger option also sets the logger of the library itself.
//
// Parameters:
//   - device: the GPU device
//   - options: functional options passed to programs created by Load
//
// Returns:
//   - Library: the library
func NewLibrary(device gpu.Device, options ...ProgramBuilderOption) Library {
	// Only the logger is read back; the other options just set fields on the scratch program.
	defaults := &program{logger: logger.Core()}
	for _, opt := range options {
		opt(defaults)
	}
	return &library{
		device:   device,
		logger:   defaults.logger,
		options:  options,
		programs: make(map[string]Program),
		pending:  make(map[string]struct{}),
	}
}

func (l *library) Add(p Program) error {
	return l.AddAs(p.Name(), p)
}

func (l *library) AddAs(name string, p Program) error {
	if l.Exists(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, name)
	}
	l.programs[name] = p
	if l.watcher != nil {
		l.watchProgram(p)
	}
	return nil
}

func (l *library) Load(path string) (Program, error) {
	name := DeriveName(path)
	if l.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProgram, name)
	}
	p := NewFromFile(l.device, path, l.options...)
	return p, l.AddAs(name, p)
}

func (l *library) Get(name string) (Program, bool) {
	p, ok := l.programs[name]
	return p, ok
}

func (l *library) Exists(name string) bool {
	_, ok := l.programs[name]
	return ok
}

func (l *library) Names() []string {
	names := make([]string, 0, len(l.programs))
	for name := range l.programs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (l *library) Watch() error {
	if l.watcher != nil {
		return ErrWatcherRunning
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create shader watcher: %w", err)
	}
	l.watcher = w
	l.done = make(chan struct{})
	for _, p := range l.programs {
		l.watchProgram(p)
	}

	l.wg.Add(1)
	go l.watch(w, l.done)
	return nil
}

// watchProgram watches the directories of p's files. Editors commonly replace files on save, so
// watching the directory keeps working after the original inode is gone.
func (l *library) watchProgram(p Program) {
	for _, path := range p.Paths() {
		dir := filepath.Dir(path)
		if err := l.watcher.Add(dir); err != nil {
			l.logger.Warn("cannot watch shader directory", "dir", dir, "error", err)
		}
	}
}

func (l *library) watch(w *fsnotify.Watcher, done <-chan struct{}) {
	defer l.wg.Done()
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				l.mu.Lock()
				l.pending[filepath.Clean(event.Name)] = struct{}{}
				l.mu.Unlock()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.logger.Warn("shader watcher error", "error", err)
		}
	}
}

// notify queues a changed path as if the watcher had reported it.
func (l *library) notify(path string) {
	l.mu.Lock()
	l.pending[filepath.Clean(path)] = struct{}{}
	l.mu.Unlock()
}

func (l *library) ProcessReloads() int {
	l.mu.Lock()
	if len(l.pending) == 0 {
		l.mu.Unlock()
		return 0
	}
	changed := l.pending
	l.pending = make(map[string]struct{})
	l.mu.Unlock()

	reloaded := 0
	for _, name := range l.Names() {
		p := l.programs[name]
		if !usesAny(p, changed) {
			continue
		}
		if err := p.Reload(); err != nil {
			l.logger.Error("shader reload failed, keeping previous program", "program", name, "error", err)
			continue
		}
		reloaded++
	}
	return reloaded
}

func usesAny(p Program, changed map[string]struct{}) bool {
	for _, path := range p.Paths() {
		if _, ok := changed[filepath.Clean(path)]; ok {
			return true
		}
	}
	return false
}

func (l *library) Close() error {
	var err error
	if l.watcher != nil {
		close(l.done)
		err = l.watcher.Close()
		l.wg.Wait()
		l.watcher = nil
	}
	for _, p := range l.programs {
		p.Destroy()
	}
	clear(l.programs)
	return err
}
