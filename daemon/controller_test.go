package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/One-com/gonedaemon/config"
)

// recorded makes the callbacks of s show up in the calls of fs
func recorded(fs *fakeSystem, s ServiceFuncs) ServiceFuncs {
	return ServiceFuncs{
		Start: func(cfg *config.Snapshot) error {
			fs.record("start")
			return s.OnStart(cfg)
		},
		Update: func() error {
			fs.record("update")
			return s.OnUpdate()
		},
		Reload: func(cfg *config.Snapshot) error {
			fs.record("reload")
			return s.OnReload(cfg)
		},
		Stop: func() error {
			fs.record("stop")
			return s.OnStop()
		},
	}
}

func count(calls []string, name string) (n int) {
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return
}

func run(t *testing.T, c *Controller, svc Service) int {
	t.Helper()
	code, exited := exitCode(func() { c.Run(svc) })
	require.True(t, exited, "Run did not exit")
	return code
}

func TestDaemonizeOrder(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs)

	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error { c.Stop(ExitSuccess); return nil },
	}))

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, []string{
		"fork", "umask(0)", "openlog", "setsid", "ignore", "chdir", "stdio",
		"start", "update", "stop", "closelog", "exit",
	}, fs.Calls())
	assert.Equal(t, "testd", fs.logName)
	assert.Equal(t, os.Getpid(), c.Pid())
	assert.Equal(t, 4242, c.Sid())
}

func TestParentExits(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	fs.child = false
	c := newTestController(t, fs)

	code := run(t, c, recorded(fs, ServiceFuncs{}))
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, []string{"fork", "exit"}, fs.Calls())
}

func TestFatalDaemonization(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fs *fakeSystem) []Option
		last  string
	}{
		{
			name: "fork",
			setup: func(fs *fakeSystem) []Option {
				fs.forkErr = errors.New("EAGAIN")
				return nil
			},
			last: "fork",
		},
		{
			name: "setsid",
			setup: func(fs *fakeSystem) []Option {
				fs.setsidErr = errors.New("EPERM")
				return nil
			},
			last: "setsid",
		},
		{
			name: "working directory",
			setup: func(fs *fakeSystem) []Option {
				return []Option{WorkingDir(filepath.Join(os.TempDir(), "no", "such", "dir"))}
			},
			last: "chdir",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLog(t)
			fs := newFakeSystem()
			c := newTestController(t, fs, tc.setup(fs)...)

			code := run(t, c, recorded(fs, ServiceFuncs{}))
			assert.Equal(t, ExitFailure, code)

			calls := fs.Calls()
			assert.Zero(t, count(calls, "start"))
			assert.Zero(t, count(calls, "update"))
			assert.Zero(t, count(calls, "stop"))
			// the failing step is followed directly by the exit
			require.GreaterOrEqual(t, len(calls), 3)
			assert.Equal(t, []string{tc.last, "closelog", "exit"}, calls[len(calls)-3:])
			assert.True(t, logs.contains("Failed"))
		})
	}
}

func TestWorkingDirectory(t *testing.T) {
	captureLog(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) })

	dir := t.TempDir()
	fs := newFakeSystem()
	fs.realChdir = true
	var c *Controller
	var cwd string
	c = newTestController(t, fs, WorkingDir(dir))

	code := run(t, c, ServiceFuncs{
		Start: func(*config.Snapshot) error {
			cwd, err = os.Getwd()
			c.Stop(ExitSuccess)
			return err
		},
	})
	assert.Equal(t, ExitSuccess, code)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStopDuringStart(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, UpdateInterval(time.Millisecond))

	code := run(t, c, recorded(fs, ServiceFuncs{
		Start: func(*config.Snapshot) error { c.Stop(7); return nil },
	}))

	assert.Equal(t, 7, code)
	calls := fs.Calls()
	assert.Equal(t, 1, count(calls, "start"))
	assert.Zero(t, count(calls, "update"))
	assert.Equal(t, 1, count(calls, "stop"))
}

func TestLastStopCodeWins(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, UpdateInterval(time.Millisecond))

	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error {
			c.Stop(3)
			c.Stop(5)
			return nil
		},
	}))

	assert.Equal(t, 5, code)
	assert.Equal(t, 1, count(fs.Calls(), "update"))
	assert.Equal(t, 1, count(fs.Calls(), "stop"))
	assert.Equal(t, Stopping, c.State())
}

func TestStopWakesWait(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, UpdateInterval(time.Hour))

	begin := time.Now()
	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error {
			go func() {
				time.Sleep(20 * time.Millisecond)
				c.Stop(2)
			}()
			return nil
		},
	}))

	assert.Equal(t, 2, code)
	assert.Less(t, time.Since(begin), 10*time.Second)
	assert.Equal(t, 1, count(fs.Calls(), "update"))
}

func TestSIGTERMStops(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	c := newTestController(t, fs, UpdateInterval(time.Hour))

	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error {
			return syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
		},
	}))

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, 1, count(fs.Calls(), "update"))
	assert.Equal(t, 1, count(fs.Calls(), "stop"))
	assert.True(t, logs.contains("SIGTERM"))
}

func TestThreeUpdates(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, UpdateInterval(time.Millisecond))

	n := 0
	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error {
			n++
			if n == 3 {
				c.Stop(ExitSuccess)
			}
			return nil
		},
	}))

	assert.Equal(t, ExitSuccess, code)
	calls := fs.Calls()
	assert.Equal(t, 3, count(calls, "update"))
	assert.Equal(t, 1, count(calls, "stop"))
	assert.Equal(t, []string{"start", "update", "update", "update", "stop", "closelog", "exit"},
		calls[len(calls)-7:])
}

func TestUpdateErrorStops(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	c := newTestController(t, fs, UpdateInterval(time.Millisecond))

	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error { return errors.New("sensor gone") },
	}))

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, 1, count(fs.Calls(), "update"))
	assert.Equal(t, 1, count(fs.Calls(), "stop"))
	assert.True(t, logs.contains("sensor gone"))
}

func TestStartErrorStops(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	c := newTestController(t, fs)

	code := run(t, c, recorded(fs, ServiceFuncs{
		Start: func(*config.Snapshot) error { return errors.New("no") },
	}))

	assert.Equal(t, ExitFailure, code)
	assert.Zero(t, count(fs.Calls(), "update"))
	assert.Equal(t, 1, count(fs.Calls(), "stop"))
}

func TestStopErrorIsLogged(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs)

	code := run(t, c, ServiceFuncs{
		Start: func(*config.Snapshot) error { c.Stop(ExitSuccess); return nil },
		Stop:  func() error { return errors.New("flush failed") },
	})
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, logs.contains("flush failed"))
}

func TestStopBeforeRun(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	c := newTestController(t, fs)
	assert.Equal(t, NotStarted, c.State())

	c.Stop(4)
	assert.Equal(t, Stopping, c.State())

	code := run(t, c, recorded(fs, ServiceFuncs{}))
	assert.Equal(t, 4, code)
	calls := fs.Calls()
	assert.Equal(t, 1, count(calls, "chdir"), "still daemonized")
	assert.Zero(t, count(calls, "start"))
	assert.Zero(t, count(calls, "stop"))
	assert.True(t, logs.contains("Stopped before start"))
}

func TestStates(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs)

	var inStart, inStop State
	run(t, c, ServiceFuncs{
		Start: func(*config.Snapshot) error {
			inStart = c.State()
			c.Stop(ExitSuccess)
			return nil
		},
		Stop: func() error {
			inStop = c.State()
			return nil
		},
	})
	assert.Equal(t, Running, inStart)
	assert.Equal(t, Stopping, inStop)
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestRunTwice(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs)

	var again error
	var svc ServiceFuncs
	svc = ServiceFuncs{
		Start: func(*config.Snapshot) error {
			again = c.Run(svc)
			c.Stop(ExitSuccess)
			return nil
		},
	}
	run(t, c, svc)
	assert.ErrorIs(t, again, ErrAlreadyRunning)
	assert.True(t, logs.contains("already running"))
}

func TestSecondControllerIsFatal(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	first := newTestController(t, fs)

	code, exited := exitCode(func() { New("again", withSystem(fs)) })
	assert.True(t, exited)
	assert.Equal(t, ExitFailure, code)
	assert.Same(t, first, instance.Load())
	assert.True(t, logs.contains("Only one"))
}

func TestForeground(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, Foreground(true))

	code := run(t, c, recorded(fs, ServiceFuncs{
		Start: func(*config.Snapshot) error { c.Stop(ExitSuccess); return nil },
	}))
	assert.Equal(t, ExitSuccess, code)

	calls := fs.Calls()
	assert.Zero(t, count(calls, "fork"))
	assert.Zero(t, count(calls, "setsid"))
	assert.Zero(t, count(calls, "stdio"))
	assert.Equal(t, 1, count(calls, "chdir"))
	assert.Zero(t, c.Sid())
	assert.Equal(t, os.Getpid(), c.Pid())
}

func TestSetters(t *testing.T) {
	logs := captureLog(t)
	fs := newFakeSystem()
	c := newTestController(t, fs)

	assert.Equal(t, "testd", c.Name())
	c.SetName("other")
	assert.Equal(t, "other", c.Name())

	c.SetUpdateInterval(time.Minute)
	assert.Equal(t, time.Minute, c.UpdateInterval())

	old := c.WorkingDir()
	err := c.SetWorkingDir(filepath.Join(old, "missing"))
	assert.Error(t, err)
	assert.Equal(t, old, c.WorkingDir())
	assert.True(t, logs.contains("Failed changing working directory"))

	dir := t.TempDir()
	require.NoError(t, c.SetWorkingDir(dir))
	assert.Equal(t, dir, c.WorkingDir())
	assert.Equal(t, []string{filepath.Join(old, "missing"), dir}, fs.chdirs)
}

func TestDefaults(t *testing.T) {
	fs := newFakeSystem()
	t.Cleanup(func() { instance.Store(nil) })
	c := New("d", withSystem(fs))

	assert.Equal(t, DefaultWorkingDir, c.WorkingDir())
	assert.Equal(t, DefaultUpdateInterval, c.UpdateInterval())
	assert.Equal(t, ExitSuccess, c.ExitCode())
	assert.Equal(t, NotStarted, c.State())
	assert.Zero(t, c.Pid())
	assert.Equal(t, "", c.ConfigPath())
}

func TestUpdateIntervalMinimum(t *testing.T) {
	fs := newFakeSystem()
	c := newTestController(t, fs, UpdateInterval(0))
	assert.Equal(t, MinUpdateInterval, c.UpdateInterval())

	c.SetUpdateInterval(-time.Second)
	assert.Equal(t, MinUpdateInterval, c.UpdateInterval())

	c.SetUpdateInterval(MinUpdateInterval / 2)
	assert.Equal(t, MinUpdateInterval, c.UpdateInterval())
}

func TestZeroIntervalUpdates(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, UpdateInterval(0))

	start := time.Now()
	n := 0
	code := run(t, c, recorded(fs, ServiceFuncs{
		Update: func() error {
			n++
			if n == 5 {
				c.Stop(ExitSuccess)
			}
			return nil
		},
	}))

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, 5, count(fs.Calls(), "update"))
	assert.GreaterOrEqual(t, time.Since(start), 4*MinUpdateInterval)
}

func TestExitCodeLowBits(t *testing.T) {
	fs := newFakeSystem()
	c := newTestController(t, fs)

	c.Stop(259)
	assert.Equal(t, 3, c.ExitCode())
	c.Stop(-1)
	assert.Equal(t, 255, c.ExitCode())
	c.Stop(ExitFailure)
	assert.Equal(t, ExitFailure, c.ExitCode())
}

func TestRunExitCodeLowBits(t *testing.T) {
	captureLog(t)
	fs := newFakeSystem()
	var c *Controller
	c = newTestController(t, fs, UpdateInterval(time.Millisecond))

	code := run(t, c, ServiceFuncs{
		Start: func(*config.Snapshot) error { c.Stop(256 + 9); return nil },
	})
	assert.Equal(t, 9, code)
}

func TestServiceFuncsZero(t *testing.T) {
	var s ServiceFuncs
	assert.NoError(t, s.OnStart(config.Empty()))
	assert.NoError(t, s.OnUpdate())
	assert.NoError(t, s.OnReload(config.Empty()))
	assert.NoError(t, s.OnStop())
}

func TestLogHook(t *testing.T) {
	logs := captureLog(t)
	Log(LvlINFO, "hello")
	assert.True(t, logs.contains("hello"))

	SetLogger(nil)
	Log(LvlINFO, "silent")
}
