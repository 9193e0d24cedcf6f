// Package fs persists received frames to the local file system.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bft-labs/framepipe/internal/domain"
)

const (
	dumpPrefix = "frame-"
	dumpSuffix = ".raw"
)

// FrameDumper implements ports.FrameHandler by writing each payload to its
// own file in dir.
type FrameDumper struct {
	dir      string
	maxFiles int
}

// NewFrameDumper creates a dumper for dir. When maxFiles is positive only the
// newest maxFiles dumps are kept.
func NewFrameDumper(dir string, maxFiles int) *FrameDumper {
	return &FrameDumper{dir: dir, maxFiles: maxFiles}
}

// HandleFrame writes the frame atomically (temp file, then rename).
func (d *FrameDumper) HandleFrame(frame domain.Frame) error {
	if err := os.MkdirAll(d.dir, 0o700); err != nil {
		return err
	}

	path := d.Path(frame)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, frame.Payload, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	if d.maxFiles > 0 {
		return d.prune()
	}
	return nil
}

// Path returns where frame is stored. Names sort in sequence order.
func (d *FrameDumper) Path(frame domain.Frame) string {
	name := fmt.Sprintf("%s%010d-%dx%dx%d%s", dumpPrefix, frame.Seq, frame.Width, frame.Height, frame.BitsPerPixel, dumpSuffix)
	return filepath.Join(d.dir, name)
}

// prune removes the oldest dumps beyond maxFiles.
func (d *FrameDumper) prune() error {
	ents, err := os.ReadDir(d.dir)
	if err != nil {
		return err
	}

	var dumps []string
	for _, e := range ents {
		n := e.Name()
		if !e.IsDir() && strings.HasPrefix(n, dumpPrefix) && strings.HasSuffix(n, dumpSuffix) {
			dumps = append(dumps, n)
		}
	}
	if len(dumps) <= d.maxFiles {
		return nil
	}

	sort.Strings(dumps)
	for _, n := range dumps[:len(dumps)-d.maxFiles] {
		if err := os.Remove(filepath.Join(d.dir, n)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
