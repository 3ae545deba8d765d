package daemon

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/One-com/gonedaemon/log"
	"github.com/One-com/gonedaemon/sd"
	"github.com/One-com/gonedaemon/signals"
)

// Mark of the detached process in its environment.
const (
	envDaemonStage = "GONE_DAEMON_STAGE"
	stageDetached  = "1"
)

// system is the OS as seen by the daemonization procedure.
type system interface {
	// Fork returns true in the detached child and false in the parent.
	Fork() (child bool, err error)
	Umask(mask int) int
	Setsid() (sid int, err error)
	Chdir(dir string) error
	RedirectStdio() error
	IgnoreSignal(sig ...os.Signal)
	OpenLog(name string) error
	CloseLog()
	Exit(code int)
}

type osSystem struct{}

// Fork starts the program again with the detached mark set.
// A Go process can't fork(2) once the runtime has started threads.
func (osSystem) Fork() (bool, error) {
	if os.Getenv(envDaemonStage) == stageDetached {
		os.Unsetenv(envDaemonStage)
		return true, nil
	}
	_, err := sd.StartProcess([]string{envDaemonStage + "=" + stageDetached})
	return false, err
}

func (osSystem) Umask(mask int) int {
	return unix.Umask(mask)
}

func (osSystem) Setsid() (int, error) {
	return unix.Setsid()
}

func (osSystem) Chdir(dir string) error {
	return os.Chdir(dir)
}

func (osSystem) RedirectStdio() error {
	null, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer null.Close()
	for _, fd := range []int{syscall.Stdin, syscall.Stdout, syscall.Stderr} {
		if err = dupTo(int(null.Fd()), fd); err != nil {
			return err
		}
	}
	return nil
}

func (osSystem) IgnoreSignal(sig ...os.Signal) {
	signals.Ignore(sig...)
}

func (osSystem) OpenLog(name string) error {
	return log.Init(name)
}

func (osSystem) CloseLog() {
	log.Shutdown()
}

func (osSystem) Exit(code int) {
	os.Exit(code)
}
