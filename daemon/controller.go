package daemon

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/One-com/gonedaemon/config"
	"github.com/One-com/gonedaemon/pidfile"
	"github.com/One-com/gonedaemon/signals"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Defaults for a new Controller
const (
	DefaultWorkingDir     = "/"
	DefaultUpdateInterval = 10 * time.Second

	// MinUpdateInterval is the shortest time between OnUpdate calls.
	// Shorter intervals, including zero and negative ones, are raised to it.
	MinUpdateInterval = time.Millisecond
)

// ErrAlreadyRunning is returned by Run if it was called before.
var ErrAlreadyRunning = errors.New("Daemon already running")

// State is where a Controller is in its life. It only moves forward.
type State int32

const (
	NotStarted State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// The one Controller of the process. The signal handler reaches it through
// the Mappings set up in daemonize.
var instance atomic.Pointer[Controller]

// Controller detaches the process and drives a Service until stopped.
type Controller struct {
	sys system

	mu         sync.Mutex
	name       string
	workingDir string
	interval   time.Duration
	configPath string
	pid        int
	sid        int

	args       []string
	pidPath    string
	watch      bool
	foreground bool
	notify     bool

	state    atomic.Int32
	exitCode atomic.Int32
	ran      atomic.Bool

	stopCh   chan struct{}
	reloadCh chan struct{} // 1 to take pending into account

	// set up by daemonize, torn down by release
	sigs     *signals.Handler
	pidFile  *pidfile.PidFile
	watcher  *config.Watcher
	sdDone   chan struct{}
	sdWaiter sync.WaitGroup
}

// New creates the Controller of the process. The name is the syslog tag.
// Only one Controller can be created per process. A second call logs and
// exits the process with ExitFailure.
func New(name string, opts ...Option) *Controller {
	c := &Controller{
		sys:        osSystem{},
		name:       name,
		workingDir: DefaultWorkingDir,
		interval:   DefaultUpdateInterval,
		args:       os.Args[1:],
		stopCh:     make(chan struct{}),
		reloadCh:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(c)
	}

	if !instance.CompareAndSwap(nil, c) {
		Log(LvlCRIT, "Only one daemon controller allowed per process")
		c.sys.Exit(ExitFailure)
	}
	return c
}

// Name returns the syslog tag of the daemon
func (c *Controller) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// SetName sets the syslog tag. It only has effect before Run.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// WorkingDir returns the configured working directory
func (c *Controller) WorkingDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workingDir
}

// SetWorkingDir changes into dir at once and makes it the working directory
// used when detaching. If dir can't be entered, the error is logged and
// returned and the previous working directory is kept.
func (c *Controller) SetWorkingDir(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.sys.Chdir(dir); err != nil {
		Log(LvlERROR, fmt.Sprintf("Failed changing working directory to %s: %s", dir, err.Error()))
		return err
	}
	c.workingDir = dir
	return nil
}

// UpdateInterval returns the time between OnUpdate calls
func (c *Controller) UpdateInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetUpdateInterval sets the time between OnUpdate calls. It takes effect from
// the next wait. Intervals below MinUpdateInterval are raised to it.
func (c *Controller) SetUpdateInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = clampInterval(d)
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinUpdateInterval {
		return MinUpdateInterval
	}
	return d
}

// ConfigPath returns the --config argument, once Run has parsed it.
func (c *Controller) ConfigPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configPath
}

// Pid returns the process id of the detached daemon, 0 before that.
func (c *Controller) Pid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pid
}

// Sid returns the session id of the detached daemon. It is 0 before
// detaching and in Foreground mode.
func (c *Controller) Sid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sid
}

// State returns the current State.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// ExitCode returns the code the process will exit with.
func (c *Controller) ExitCode() int {
	return int(c.exitCode.Load())
}

// Stop records code as the exit code and ends the update loop. The wait between
// updates returns at once. Stop can be called from any go-routine, also before
// Run has started the Service, in which case no callbacks are made.
// Calling Stop again only changes the exit code; the last code wins.
// An exit status is 0 to 255, only the low 8 bits of code are kept.
func (c *Controller) Stop(code int) {
	c.exitCode.Store(int32(code & 0xff))
	for {
		s := c.state.Load()
		if State(s) == Stopping {
			return
		}
		if c.state.CompareAndSwap(s, int32(Stopping)) {
			close(c.stopCh)
			return
		}
	}
}

// requestReload asks the worker to reload the configuration.
// It never blocks, so it's safe from the signal handler.
func (c *Controller) requestReload() {
	select {
	case c.reloadCh <- struct{}{}:
	default:
		Log(LvlNOTICE, "Reload already pending")
	}
}

func (c *Controller) stopping() bool {
	select {
	case <-c.stopCh:
		return true
	default:
		return false
	}
}

// Run detaches the process, then calls OnStart and OnUpdate every update
// interval until Stop is called or SIGTERM is received. Then OnStop is called
// and the process exits with the exit code. SIGHUP reloads the configuration
// given by --config and calls OnReload.
//
// In a terminal started process Run first starts the detached copy of the
// program and exits. Code before Run thus runs in both processes.
//
// Run only returns if it was called before, with ErrAlreadyRunning.
func (c *Controller) Run(svc Service) error {
	if !c.ran.CompareAndSwap(false, true) {
		Log(LvlERROR, ErrAlreadyRunning.Error())
		return ErrAlreadyRunning
	}

	c.parseArgs()
	c.daemonize()

	if c.state.CompareAndSwap(int32(NotStarted), int32(Running)) {
		c.serve(svc)
	} else {
		Log(LvlNOTICE, "Stopped before start")
	}

	c.finalize()
	return nil
}

func (c *Controller) serve(svc Service) {
	Log(LvlNOTICE, fmt.Sprintf("Starting %s (pid=%d)", c.Name(), c.Pid()))

	if err := svc.OnStart(c.loadConfig()); err != nil {
		Log(LvlCRIT, fmt.Sprintf("Start failed: %s", err.Error()))
		c.Stop(ExitFailure)
	} else {
		c.ready()
		c.loop(svc)
	}

	Log(LvlNOTICE, "Exit mainloop")
	if err := svc.OnStop(); err != nil {
		Log(LvlWARN, fmt.Sprintf("Stop failed: %s", err.Error()))
	}
}

// loop calls OnUpdate until stopped. Updates never overlap.
func (c *Controller) loop(svc Service) {
	for !c.stopping() {
		if err := svc.OnUpdate(); err != nil {
			Log(LvlERROR, fmt.Sprintf("Update failed: %s", err.Error()))
			c.Stop(ExitFailure)
			return
		}
		if !c.wait(svc) {
			return
		}
	}
}

// wait sleeps for the update interval, servicing reload requests meanwhile.
// Reloads don't move the deadline. It returns false if Stop was called.
func (c *Controller) wait(svc Service) bool {
	if c.stopping() {
		return false
	}
	timer := time.NewTimer(c.UpdateInterval())
	defer timer.Stop()
	for {
		select {
		case <-c.stopCh:
			return false
		case <-timer.C:
			return true
		case <-c.reloadCh:
			if c.stopping() {
				return false
			}
			c.serviceReload(svc)
		}
	}
}

func (c *Controller) serviceReload(svc Service) {
	Log(LvlNOTICE, "Reloading")
	c.notifyReloading()
	if err := svc.OnReload(c.loadConfig()); err != nil {
		Log(LvlERROR, fmt.Sprintf("Reload failed: %s", err.Error()))
	}
	c.notifyReady()
}

// loadConfig returns the configuration at the config path, or an empty one.
func (c *Controller) loadConfig() *config.Snapshot {
	cfg, err := config.Load(c.ConfigPath())
	switch {
	case errors.Is(err, config.ErrNoPath):
		Log(LvlINFO, "No config file given, using empty configuration")
	case err != nil:
		Log(LvlERROR, fmt.Sprintf("Failed loading config: %s", err.Error()))
	}
	return cfg
}

// finalize tears down what daemonize set up and exits. The exit code is read
// here, after OnStop.
func (c *Controller) finalize() {
	c.notifyStopping()
	c.release()
	code := c.ExitCode()
	Log(LvlNOTICE, fmt.Sprintf("Exiting (code=%d)", code))
	c.sys.CloseLog()
	c.sys.Exit(code)
}

// release undoes daemonize. Safe to call at any point of it.
func (c *Controller) release() {
	if c.sdDone != nil {
		close(c.sdDone)
		c.sdWaiter.Wait()
		c.sdDone = nil
	}
	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			Log(LvlWARN, fmt.Sprintf("Closing config watcher: %s", err.Error()))
		}
		c.watcher = nil
	}
	if c.sigs != nil {
		c.sigs.Stop()
		c.sigs = nil
	}
	if c.pidFile != nil {
		if err := c.pidFile.Release(); err != nil {
			Log(LvlWARN, fmt.Sprintf("Releasing pid file: %s", err.Error()))
		}
		c.pidFile = nil
	}
}
