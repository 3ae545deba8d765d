package daemon

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
)

// exitPanic is how fakeSystem.Exit unwinds Run
type exitPanic struct {
	code int
}

type fakeSystem struct {
	mu        sync.Mutex
	calls     []string
	child     bool
	forkErr   error
	setsidErr error
	realChdir bool
	logName   string
	chdirs    []string
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{child: true}
}

func (f *fakeSystem) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeSystem) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSystem) Fork() (bool, error) {
	f.record("fork")
	return f.child, f.forkErr
}

func (f *fakeSystem) Umask(mask int) int {
	f.record(fmt.Sprintf("umask(%d)", mask))
	return 022
}

func (f *fakeSystem) Setsid() (int, error) {
	f.record("setsid")
	if f.setsidErr != nil {
		return -1, f.setsidErr
	}
	return 4242, nil
}

func (f *fakeSystem) Chdir(dir string) error {
	f.record("chdir")
	f.mu.Lock()
	f.chdirs = append(f.chdirs, dir)
	f.mu.Unlock()
	if f.realChdir {
		return os.Chdir(dir)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}
	return nil
}

func (f *fakeSystem) RedirectStdio() error {
	f.record("stdio")
	return nil
}

func (f *fakeSystem) IgnoreSignal(sig ...os.Signal) {
	f.record("ignore")
}

func (f *fakeSystem) OpenLog(name string) error {
	f.record("openlog")
	f.mu.Lock()
	f.logName = name
	f.mu.Unlock()
	return nil
}

func (f *fakeSystem) CloseLog() {
	f.record("closelog")
}

func (f *fakeSystem) Exit(code int) {
	f.record("exit")
	panic(exitPanic{code: code})
}

// exitCode runs fn and returns the code given to fakeSystem.Exit
func exitCode(fn func()) (code int, exited bool) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(exitPanic)
			if !ok {
				panic(r)
			}
			code, exited = e.code, true
		}
	}()
	fn()
	return
}

// newTestController makes a Controller on fs, running in a temporary directory
// and with no command line arguments.
func newTestController(t *testing.T, fs *fakeSystem, opts ...Option) *Controller {
	t.Helper()
	t.Cleanup(func() { instance.Store(nil) })
	opts = append([]Option{withSystem(fs), Arguments(nil), WorkingDir(t.TempDir())}, opts...)
	return New("testd", opts...)
}

type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func captureLog(t *testing.T) *logRecorder {
	r := &logRecorder{}
	SetLogger(func(level int, msg string) {
		r.mu.Lock()
		r.lines = append(r.lines, msg)
		r.mu.Unlock()
	})
	t.Cleanup(func() { SetLogger(defaultLogger) })
	return r
}

func (r *logRecorder) contains(s string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}
