// Package pidfile keeps a locked file holding the pid of a running daemon,
// so a second instance using the same file refuses to start.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Acquire when another process holds the pid file.
var ErrLocked = errors.New("pid file locked")

// PidFile is a held pid file.
type PidFile struct {
	path string
	lock *flock.Flock
}

// Acquire takes an exclusive lock on the file at path, creating it if needed,
// and writes the pid of the calling process to it. If the lock is held
// elsewhere the error wraps ErrLocked and names the holder's pid.
func Acquire(path string) (*PidFile, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking pid file %s: %w", path, err)
	}
	if !locked {
		if pid, rerr := Read(path); rerr == nil {
			return nil, fmt.Errorf("%w: %s held by pid %d", ErrLocked, path, pid)
		}
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	err = os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("writing pid file %s: %w", path, err)
	}
	return &PidFile{path: path, lock: lock}, nil
}

// Path returns the path of the pid file.
func (p *PidFile) Path() string {
	return p.path
}

// Release removes the pid file and drops the lock.
func (p *PidFile) Release() error {
	rerr := os.Remove(p.path)
	if errors.Is(rerr, os.ErrNotExist) {
		rerr = nil
	}
	if err := p.lock.Unlock(); err != nil {
		return err
	}
	return rerr
}

// Read returns the pid stored in the file at path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("bad pid file %s: %w", path, err)
	}
	return pid, nil
}
