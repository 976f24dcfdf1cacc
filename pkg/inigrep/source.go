// SPDX-License-Identifier: MPL-2.0

package inigrep

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// StdinPath is the path that selects standard input instead of a file.
const StdinPath = "-"

type (
	// LineSource is a finite, read-once sequence of text lines with their
	// trailing newline removed. A read failure is yielded once as ("", err)
	// and ends the sequence.
	LineSource iter.Seq2[string, error]

	// Opener resolves paths into line sources.
	Opener struct {
		// FS is the filesystem files are read from.
		FS afero.Fs
		// Stdin is read when the path is StdinPath.
		Stdin io.Reader
		// OnMissing, when set, is called for every path OpenExisting skips.
		OnMissing func(path string)
	}
)

// NewOpener returns an Opener backed by the OS filesystem and os.Stdin.
func NewOpener() *Opener {
	return &Opener{
		FS:    afero.NewOsFs(),
		Stdin: os.Stdin,
	}
}

// Open returns the lines of a single path using the OS filesystem.
func Open(path string) LineSource {
	return NewOpener().Open(path)
}

// OpenAll returns the lines of all paths, in order, using the OS filesystem.
func OpenAll(paths ...string) LineSource {
	return NewOpener().OpenAll(paths...)
}

// OpenExisting is OpenAll that skips paths which do not exist.
func OpenExisting(paths ...string) LineSource {
	return NewOpener().OpenExisting(paths...)
}

// Open returns the lines of path. The file is opened when the sequence is
// first pulled and closed when it is exhausted or the consumer stops.
// A nonexistent file yields an error matching fs.ErrNotExist.
func (o *Opener) Open(path string) LineSource {
	return func(yield func(string, error) bool) {
		o.readPath(path, yield)
	}
}

// OpenAll concatenates the lines of paths as if the files were joined.
func (o *Opener) OpenAll(paths ...string) LineSource {
	return func(yield func(string, error) bool) {
		for _, path := range paths {
			if !o.readPath(path, yield) {
				return
			}
		}
	}
}

// OpenExisting concatenates the lines of paths, silently skipping paths
// that do not exist. Other errors still surface.
func (o *Opener) OpenExisting(paths ...string) LineSource {
	return func(yield func(string, error) bool) {
		for _, path := range paths {
			if path != StdinPath {
				exists, err := o.exists(path)
				if err != nil {
					yield("", fmt.Errorf("stat %s: %w", path, err))
					return
				}
				if !exists {
					if o.OnMissing != nil {
						o.OnMissing(path)
					}
					continue
				}
			}
			if !o.readPath(path, yield) {
				return
			}
		}
	}
}

func (o *Opener) exists(path string) (bool, error) {
	_, err := o.FS.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// readPath yields the lines of one path and reports whether the consumer
// wants more.
func (o *Opener) readPath(path string, yield func(string, error) bool) bool {
	if path == StdinPath {
		return readLines(o.Stdin, yield)
	}

	f, err := o.FS.Open(path)
	if err != nil {
		yield("", fmt.Errorf("open %s: %w", path, err))
		return false
	}
	defer func() { _ = f.Close() }() // read-only handle; close error carries no data loss

	return readLines(f, yield)
}

// FromReader returns the lines read from r.
func FromReader(r io.Reader) LineSource {
	return func(yield func(string, error) bool) {
		readLines(r, yield)
	}
}

// FromLines returns a source over lines already in memory.
func FromLines(lines ...string) LineSource {
	return func(yield func(string, error) bool) {
		for _, line := range lines {
			if !yield(line, nil) {
				return
			}
		}
	}
}

// FromText splits text into lines the same way a file would be read.
func FromText(text string) LineSource {
	return FromReader(strings.NewReader(text))
}

// ReadLines drains src into memory.
func ReadLines(src LineSource) ([]string, error) {
	var lines []string
	for line, err := range src {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readLines yields lines from r until EOF, a read error or the consumer
// stopping, and reports whether the consumer wants more.
func readLines(r io.Reader, yield func(string, error) bool) bool {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !yield(line, nil) {
				return false
			}
		}
		if errors.Is(err, io.EOF) {
			return true
		}
		if err != nil {
			yield("", fmt.Errorf("read line: %w", err))
			return false
		}
	}
}
