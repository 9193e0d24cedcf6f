// Package source provides byte sources for the frame reader.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FollowFile reads a file that another process keeps appending to. At end of
// file it blocks until the file is written again, and reports io.EOF only
// once the file is removed or renamed or the source is closed.
type FollowFile struct {
	path    string
	f       *os.File
	watcher *fsnotify.Watcher

	closed    chan struct{}
	closeOnce sync.Once
}

// OpenFollow opens path for following.
func OpenFollow(path string) (*FollowFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so removal and rename of the file itself are seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	f, err := os.Open(abs)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	return &FollowFile{
		path:    abs,
		f:       f,
		watcher: watcher,
		closed:  make(chan struct{}),
	}, nil
}

// Read implements io.Reader. It never returns (0, nil).
func (s *FollowFile) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := s.f.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			select {
			case <-s.closed:
				return 0, io.EOF
			default:
			}
			return 0, err
		}
		if err := s.wait(); err != nil {
			return 0, err
		}
	}
}

// wait blocks until the followed file is written to.
func (s *FollowFile) wait() error {
	for {
		select {
		case <-s.closed:
			return io.EOF

		case event, ok := <-s.watcher.Events:
			if !ok {
				return io.EOF
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				return io.EOF
			}
			if event.Has(fsnotify.Write) {
				return nil
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return io.EOF
			}
			return fmt.Errorf("watch %s: %w", s.path, err)
		}
	}
}

// Close stops following; a blocked Read returns io.EOF.
func (s *FollowFile) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		werr := s.watcher.Close()
		ferr := s.f.Close()
		err = errors.Join(werr, ferr)
	})
	return err
}
