package sd

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	envNotifySocket = "NOTIFY_SOCKET"
	envWatchdogUsec = "WATCHDOG_USEC"
	envWatchdogPid  = "WATCHDOG_PID"
)

const (
	// Don't send a STATUS
	StatusNone = iota
	// Tell systemd status is READY
	StatusReady
	// Tell systemd status is RELOADING
	StatusReloading
	// Tell systemd status is STOPPING
	StatusStopping
	// Tell the systemd WATCHDOG we are alive
	StatusWatchdog
)

const (
	// Unset the systemd notify/Watchdog env vars
	NotifyUnsetEnv = 1 << iota
)

// ErrSdNotifyNoSocket is informs the caller that there's no NOTIFY_SOCKET avaliable
var ErrSdNotifyNoSocket = errors.New("No systemd notify socket in environment")

type notifyEnv struct {
	socket           string
	watchdogDuration time.Duration
	watchdogEnabled  bool
}

var (
	envmu sync.RWMutex
	env   notifyEnv
)

func init() {
	env = readEnv(os.Getenv, os.Getpid())
}

func readEnv(getenv func(string) string, pid int) (e notifyEnv) {
	if durStr := getenv(envWatchdogUsec); durStr != "" {
		microsec, err := strconv.Atoi(durStr)
		if err == nil && microsec > 0 {
			e.watchdogDuration = time.Microsecond * time.Duration(microsec)
		}
	}
	if e.watchdogDuration != 0 {
		// Without WATCHDOG_PID the watchdog is meant for the main process
		if pidStr := getenv(envWatchdogPid); pidStr == "" {
			e.watchdogEnabled = true
		} else if p, err := strconv.Atoi(pidStr); err == nil && p == pid {
			e.watchdogEnabled = true
		}
	}
	if e.socket = getenv(envNotifySocket); e.socket != "" {
		// Handle abstract sockets
		if e.socket[0] == '@' {
			e.socket = "\x00" + e.socket[1:]
		}
	}
	return
}

// Refresh re-reads the notify and watchdog settings from the environment.
// They are read once at package init, so Refresh is only needed when the
// process changes its own environment afterwards.
func Refresh() {
	e := readEnv(os.Getenv, os.Getpid())
	envmu.Lock()
	env = e
	envmu.Unlock()
}

func currentEnv() notifyEnv {
	envmu.RLock()
	defer envmu.RUnlock()
	return env
}

// WatchdogEnabled tell whether systemd asked us to enable watchdog notifications.
func WatchdogEnabled() (enabled bool, when time.Duration) {
	e := currentEnv()
	return e.watchdogEnabled, e.watchdogDuration
}

// NotifyStatus sends systemd the service status over the notify socket.
// An empty message sends no STATUS line.
func NotifyStatus(status int, message string) error {
	var lines []string
	switch status {
	case StatusNone:
	case StatusReady:
		lines = append(lines, "READY=1")
	case StatusReloading:
		lines = append(lines, "RELOADING=1")
	case StatusStopping:
		lines = append(lines, "STOPPING=1")
	case StatusWatchdog:
		lines = append(lines, "WATCHDOG=1")
	default:
		return errors.New("Unknown notify status")
	}
	if message != "" {
		lines = append(lines, "STATUS="+message)
	}
	return Notify(0, lines...)
}

// Notify lets you control the message sent to the nofify socket more directly.
// flags control whether to unset the ENV, so child processes don't get to
// notify on our behalf.
func Notify(flags int, lines ...string) (err error) {
	e := currentEnv()

	if flags&NotifyUnsetEnv != 0 {
		defer func() {
			os.Unsetenv(envNotifySocket)
			os.Unsetenv(envWatchdogUsec)
			os.Unsetenv(envWatchdogPid)
		}()
	}

	if e.socket == "" {
		return ErrSdNotifyNoSocket
	}

	socketAddr := &net.UnixAddr{
		Name: e.socket,
		Net:  "unixgram",
	}

	var conn *net.UnixConn
	conn, err = net.DialUnix("unixgram", nil, socketAddr)
	if err != nil {
		return
	}
	defer conn.Close()

	_, err = conn.Write([]byte(strings.Join(lines, "\n")))
	return
}
