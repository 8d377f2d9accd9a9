package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/liquidlint/liquidlint/pkg/console"
	"github.com/liquidlint/liquidlint/pkg/constants"
)

const debounceDelay = 300 * time.Millisecond

// WatchFiles checks the given paths, then re-checks files as they change
// until interrupted. Failing checks do not stop the watch; the threshold
// only matters for one-shot runs.
func WatchFiles(paths []string, opts CheckOptions) error {
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	fmt.Println(console.FormatInfoMessage(
		fmt.Sprintf("Watching %d director(ies) for changes. Press Ctrl+C to stop.", len(dirs))))

	// Initial pass; findings are informational in watch mode.
	if err := CheckFiles(paths, opts); err != nil {
		fmt.Println(console.FormatWarningMessage(err.Error()))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var debounceTimer *time.Timer
	pending := newChangeSet()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !strings.HasSuffix(event.Name, constants.LiquidFileExtension) {
				continue
			}
			if opts.Config.ShouldIgnore(event.Name) {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				if opts.Verbose {
					fmt.Println(console.FormatInfoMessage("removed: " + event.Name))
				}
				pending.Remove(event.Name)
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending.Add(event.Name)

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					changed := pending.Drain()
					if len(changed) == 0 {
						return
					}
					fmt.Println(console.FormatProgressMessage(
						fmt.Sprintf("Re-checking %d changed file(s)...", len(changed))))
					if err := CheckFiles(changed, opts); err != nil {
						fmt.Println(console.FormatWarningMessage(err.Error()))
					}
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("watcher error: %v", err)))
			}

		case <-sigChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Println(console.FormatInfoMessage("Stopped watching."))
			return nil
		}
	}
}

// changeSet accumulates changed paths between debounce firings. The select
// loop adds and removes entries while the debounce timer goroutine drains, so
// access is serialized with a mutex.
type changeSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func newChangeSet() *changeSet {
	return &changeSet{paths: make(map[string]struct{})}
}

func (c *changeSet) Add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[path] = struct{}{}
}

func (c *changeSet) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, path)
}

// Drain returns the accumulated paths sorted and resets the set.
func (c *changeSet) Drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.paths))
	for path := range c.paths {
		out = append(out, path)
	}
	c.paths = make(map[string]struct{})
	sort.Strings(out)
	return out
}

// watchDirs maps target paths to the set of directories to register with the
// watcher. Files map to their parent; directories include their subtrees.
func watchDirs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := map[string]bool{}
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if strings.HasPrefix(fi.Name(), ".") && p != path {
					return filepath.SkipDir
				}
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
	}
	return dirs, nil
}
