// Package logging builds the logr.Logger used by the CLI.
package logging

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/imamik/asyncmod/internal/loader"
)

// New returns a logger that writes one line per entry to w. Entries with a
// V-level above verbosity are dropped.
func New(w io.Writer, verbosity int) logr.Logger {
	return newLogger(func(line string) {
		fmt.Fprintln(w, line)
	}, verbosity)
}

// Buffer holds formatted log lines until Replay writes them out. Any number
// of goroutines may log into it.
type Buffer struct {
	lines *loader.Queue[string]
}

// NewBuffered returns a logger whose entries are held in the returned
// Buffer instead of being written.
func NewBuffered(verbosity int) (logr.Logger, *Buffer) {
	b := &Buffer{lines: loader.NewQueue[string]()}
	return newLogger(b.lines.Enqueue, verbosity), b
}

// Len returns the number of lines not yet replayed.
func (b *Buffer) Len() int {
	return b.lines.Len()
}

// Replay writes the held lines to w in the order they were logged and
// empties the buffer. It returns the number of lines written.
func (b *Buffer) Replay(w io.Writer) int {
	n := 0
	for {
		line, ok := b.lines.TryDequeue()
		if !ok {
			return n
		}
		fmt.Fprintln(w, line)
		n++
	}
}

func newLogger(emit func(string), verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			emit(prefix + ": " + args)
			return
		}
		emit(args)
	}, funcr.Options{
		Verbosity: verbosity,
	})
}
