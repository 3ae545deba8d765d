package daemon

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/One-com/gonedaemon/config"
	"github.com/One-com/gonedaemon/pidfile"
	"github.com/One-com/gonedaemon/signals"
)

// configFlag finds --config in args. Other flags belong to the application
// and are skipped.
func configFlag(args []string) (string, error) {
	fs := pflag.NewFlagSet("daemon", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true

	path := fs.String("config", "", "configuration file")
	// keep -h/--help from ending the parse
	fs.BoolP("help", "h", false, "")

	err := fs.Parse(args)
	return *path, err
}

func (c *Controller) parseArgs() {
	path, err := configFlag(c.args)
	if err != nil {
		Log(LvlERROR, fmt.Sprintf("Bad arguments: %s", err.Error()))
	}
	// the working directory changes when detaching
	if path != "" {
		if abs, aerr := filepath.Abs(path); aerr == nil {
			path = abs
		}
	}
	c.mu.Lock()
	c.configPath = path
	c.mu.Unlock()
}

// fatal ends a daemonization gone wrong
func (c *Controller) fatal(msg string, err error) {
	Log(LvlCRIT, fmt.Sprintf("%s: %s", msg, err.Error()))
	c.release()
	c.sys.CloseLog()
	c.sys.Exit(ExitFailure)
}

// daemonize detaches the process. Any failure exits the process.
func (c *Controller) daemonize() {
	if !c.foreground {
		child, err := c.sys.Fork()
		if err != nil {
			c.fatal("Failed to fork", err)
			return
		}
		if !child {
			c.sys.Exit(ExitSuccess)
			return
		}
	}

	c.sys.Umask(0)

	if err := c.sys.OpenLog(c.Name()); err != nil {
		Log(LvlWARN, fmt.Sprintf("No syslog, logging to stderr: %s", err.Error()))
	}

	c.mu.Lock()
	c.pid = os.Getpid()
	c.mu.Unlock()

	if !c.foreground {
		sid, err := c.sys.Setsid()
		if err != nil {
			c.fatal("Failed to create new session", err)
			return
		}
		c.mu.Lock()
		c.sid = sid
		c.mu.Unlock()
	}

	c.sys.IgnoreSignal(syscall.SIGCHLD)
	c.sigs = signals.RunSignalHandler(signals.Mappings{
		syscall.SIGTERM: func() {
			Log(LvlNOTICE, "Received SIGTERM")
			c.Stop(ExitSuccess)
		},
		syscall.SIGHUP: c.requestReload,
	})

	dir := c.WorkingDir()
	if err := c.sys.Chdir(dir); err != nil {
		c.fatal(fmt.Sprintf("Failed to change directory to %s", dir), err)
		return
	}

	if c.pidPath != "" {
		pf, err := pidfile.Acquire(c.pidPath)
		if err != nil {
			c.fatal("Failed to take pid file", err)
			return
		}
		c.pidFile = pf
	}

	if path := c.ConfigPath(); c.watch && path != "" {
		w, err := config.Watch(path, 0, c.requestReload, func(err error) {
			Log(LvlWARN, fmt.Sprintf("Config watcher: %s", err.Error()))
		})
		if err != nil {
			Log(LvlERROR, fmt.Sprintf("Not watching config: %s", err.Error()))
		} else {
			c.watcher = w
		}
	}

	if !c.foreground {
		if err := c.sys.RedirectStdio(); err != nil {
			Log(LvlERROR, fmt.Sprintf("Failed closing standard files: %s", err.Error()))
		}
	}
}
