package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	serr "photocull/internal/errors"
	"photocull/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Removal reports a file that disappeared from a watched folder, either
// deleted or renamed away.
type Removal struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors folders for photos removed behind our back. A watcher
// is single use: once stopped, create a new one.
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel to receive removals
	removals chan Removal

	// Channel to signal stop, and closed by the loop when it exits
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the directories list
	mutex sync.RWMutex

	running bool
	stopped bool
}

// New creates a new folder watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serr.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		directories: []string{},
		removals:    make(chan Removal, 64),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory adds a directory to watch using fsnotify
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return serr.FromOS("error accessing directory", dir, err)
	}
	if !info.IsDir() {
		return serr.NewFileError("not a directory", dir, serr.NotADirectory, nil)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return serr.NewFileError("failed to add directory to watcher", dir, serr.FileAccessDenied, err)
	}

	w.mutex.Lock()
	found := false
	for _, existingDir := range w.directories {
		if existingDir == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Removals returns the channel that delivers removal events. It is closed
// after Stop.
func (w *Watcher) Removals() <-chan Removal {
	return w.removals
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	w.running = true

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.removals)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			// A rename can report the old name while a file of the same
			// name already exists again; only report true absences.
			if _, err := os.Lstat(event.Name); err == nil {
				continue
			}

			removal := Removal{
				Path:      filepath.Clean(event.Name),
				Timestamp: time.Now(),
				Op:        event.Op,
			}
			select {
			case w.removals <- removal:
			case <-w.stopChan:
				return
			default:
				log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	w.stopped = true
	wasRunning := w.running
	w.running = false
	close(w.stopChan)
	w.mutex.Unlock()

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	if wasRunning {
		<-w.done
	} else {
		close(w.removals)
	}
	log.Debug("Watcher stopped.")
}
