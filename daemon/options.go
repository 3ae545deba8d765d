package daemon

import (
	"time"
)

// Option change the behaviour of a Controller
type Option func(*Controller)

// WorkingDir sets the directory the daemon changes into when detaching.
// Default is "/".
func WorkingDir(dir string) Option {
	return Option(func(c *Controller) {
		c.workingDir = dir
	})
}

// UpdateInterval sets the time between OnUpdate calls. Default is 10 seconds.
// Intervals below MinUpdateInterval are raised to it.
func UpdateInterval(d time.Duration) Option {
	return Option(func(c *Controller) {
		c.interval = clampInterval(d)
	})
}

// Arguments sets the command line arguments searched for --config.
// Default is os.Args[1:].
func Arguments(args []string) Option {
	return Option(func(c *Controller) {
		c.args = args
	})
}

// PidFile makes the daemon lock the file at path and write its pid to it
// after changing working directory. A relative path is taken relative to the
// working directory. If the file is locked by another process the daemon exits.
func PidFile(path string) Option {
	return Option(func(c *Controller) {
		c.pidPath = path
	})
}

// WatchConfig makes the daemon reload, as on SIGHUP, when the config file changes.
func WatchConfig(enable bool) Option {
	return Option(func(c *Controller) {
		c.watch = enable
	})
}

// Foreground makes the daemon stay in the process and session it was started in.
// Use it with supervisors tracking the started process, like systemd
// Type=simple or Type=notify services. Standard files are left open.
func Foreground(enable bool) Option {
	return Option(func(c *Controller) {
		c.foreground = enable
	})
}

// NotifySystemd makes the daemon tell systemd about its state over the notify
// socket and ping the watchdog if systemd asked for it.
func NotifySystemd(enable bool) Option {
	return Option(func(c *Controller) {
		c.notify = enable
	})
}

func withSystem(s system) Option {
	return Option(func(c *Controller) {
		c.sys = s
	})
}
