package blackhole

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	trylock "github.com/subchen/go-trylock/v2"
)

// shaderUpdate carries a freshly read shader source to the rendering thread.
type shaderUpdate struct {
	path string
	src  []byte
}

// shaderReloader watches shader sources and republishes their contents on a
// channel. Compiling stays on the rendering thread; this side only does file
// IO.
type shaderReloader struct {
	watcher *fsnotify.Watcher
	updates chan shaderUpdate
	busy    trylock.TryLocker
	reads   sync.WaitGroup
	done    chan struct{}
}

func startShaderReloader(paths []string) (*shaderReloader, error) {
	w, err := newFsWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}
	sr := &shaderReloader{
		watcher: w,
		updates: make(chan shaderUpdate, 8),
		busy:    trylock.New(),
		done:    make(chan struct{}),
	}
	go sr.loop()
	return sr, nil
}

// stop closes the watcher and waits for the event loop and any in-flight
// reads to drain.
func (sr *shaderReloader) stop() {
	_ = sr.watcher.Close()
	<-sr.done
	sr.reads.Wait()
}

func (sr *shaderReloader) loop() {
	defer close(sr.done)
	for {
		select {
		case ev, ok := <-sr.watcher.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if !isShaderPath(ev.Name) {
				continue
			}
			// Reads run on their own goroutines so the events of a save
			// burst overlap and the busy lock can collapse them.
			sr.reads.Add(1)
			go func(path string) {
				defer sr.reads.Done()
				sr.read(path)
			}(ev.Name)
		case err, ok := <-sr.watcher.Errors:
			if !ok {
				return
			}
			log.Println("[shaders] watch error:", err)
		}
	}
}

// read pulls the changed file and queues it for the rendering thread. Editors
// save in short write bursts, so the busy lock collapses overlapping events
// and the read itself retries until the file settles.
func (sr *shaderReloader) read(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if !sr.busy.TryLock(ctx) {
		return // a read for this burst is already running
	}
	defer sr.busy.Unlock()

	src, err := readShaderSource(path, backoff.NewExponentialBackOff())
	if err != nil {
		log.Println("[shaders] read failed:", err)
		return
	}
	select {
	case sr.updates <- shaderUpdate{path: path, src: src}:
	default:
		log.Println("[shaders] update queue full, dropping", path)
	}
}

// readShaderSource retries until the file is readable and non-empty.
func readShaderSource(path string, policy backoff.BackOff) ([]byte, error) {
	var src []byte
	op := func() error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return fmt.Errorf("%s is empty", path)
		}
		src = b
		return nil
	}
	if err := backoff.Retry(op, backoff.WithMaxRetries(policy, 6)); err != nil {
		return nil, err
	}
	return src, nil
}

func isShaderPath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".frag", ".vert", ".glsl":
		return true
	}
	return false
}

// startShaderWatch is a no-op unless OptWatchShaders was given.
func (r *Renderer) startShaderWatch() (func(), error) {
	if len(r.watchPaths) == 0 {
		return func() {}, nil
	}
	sr, err := startShaderReloader(r.watchPaths)
	if err != nil {
		return nil, err
	}
	r.reload = sr
	log.Println("[shaders] watching", r.watchPaths)
	return sr.stop, nil
}

// drainShaderReloads applies queued shader updates on the rendering thread.
// A failed compile logs and keeps the previous program.
func (r *Renderer) drainShaderReloads() {
	if r.reload == nil {
		return
	}
	for {
		select {
		case u := <-r.reload.updates:
			if err := r.backend.ReloadShader(u.path, u.src); err != nil {
				log.Println("[shaders] reload failed:", err)
			} else {
				log.Println("[shaders] reloaded", filepath.Base(u.path))
			}
		default:
			return
		}
	}
}
