package log

import (
	"io"
	"sync"
)

// syncWriter serializes writes to an io.Writer
type syncWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// SyncWriter encapsulates an io.Writer in a Mutex, so only one Write operation is done
// at a time.
func SyncWriter(w io.Writer) io.Writer {
	return &syncWriter{out: w}
}

func (s *syncWriter) Write(b []byte) (n int, err error) {
	s.mu.Lock()
	n, err = s.out.Write(b)
	s.mu.Unlock()
	return
}
