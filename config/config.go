// Package config loads the flat "key = value" configuration files of gonedaemon
// daemons into immutable snapshots.
//
// The format is UTF-8 text with one pair per line:
//
//	# comment
//	version = 1.2
//	name    = hello world
//
// Blank lines and lines starting with '#' are ignored. Key and value are split at
// the first '=' and both are trimmed of whitespace. A later occurrence of a key
// replaces an earlier one. Lines without '=' are skipped.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoPath is returned by Load when no config file path was given.
var ErrNoPath = errors.New("No config file path")

// ParseError tells which line of the input could not be read.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error (line=%d): %s", e.Line, e.Err.Error())
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads "key = value" lines into a Snapshot.
func Parse(r io.Reader) (*Snapshot, error) {
	values := make(map[string]string)

	// no limit on line length
	br := bufio.NewReader(r)
	lineno := 0
	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return Empty(), &ParseError{Line: lineno + 1, Err: err}
		}
		if err == io.EOF && text == "" {
			break
		}
		lineno++
		if lineno == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		line := strings.TrimSpace(text)
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return &Snapshot{values: values}, nil
}

// Load parses the file at path. On any error an empty Snapshot is returned
// along with the error, so callers can carry on with no configuration.
// An empty path gives ErrNoPath.
func Load(path string) (*Snapshot, error) {
	if path == "" {
		return Empty(), ErrNoPath
	}
	f, err := os.Open(path)
	if err != nil {
		return Empty(), err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Empty(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
