package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink persists an encoded artifact and returns where it was stored.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes artifacts into a directory, creating it on first use.
// Names must be bare file names. Existing files with the same name are
// overwritten.
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink rooted at dir. An empty dir means the working
// directory.
func NewFileSink(dir string) FileSink {
	if dir == "" {
		dir = "."
	}
	return FileSink{Dir: dir}
}

// Save implements Sink.
func (s FileSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid file name %q", ErrSink, name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrSink, s.Dir, err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrSink, path, err)
	}
	return path, nil
}
