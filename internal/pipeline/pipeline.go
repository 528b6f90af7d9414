// Package pipeline wires loaders, analyses and writers into the two
// batch runs exposed by the command line.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// nopCloser adapts stdout so it can be closed like a file.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// createOutput opens path for writing. An empty path or "-" writes to stdout.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
