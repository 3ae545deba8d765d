package daemon

import (
	"sync"

	"github.com/One-com/gonedaemon/log"
	"github.com/One-com/gonedaemon/log/syslog"
)

// implements a simple log interface for syslog leveled logging.

// Syslog priority levels
const (
	LvlEMERG int = iota // Not to be used by applications.
	LvlALERT
	LvlCRIT
	LvlERROR
	LvlWARN
	LvlNOTICE
	LvlINFO
	LvlDEBUG
)

// A LoggerFunc can be set to make the daemon internal events log to a custom log library
type LoggerFunc func(level int, message string)

var (
	logmu  sync.RWMutex
	logger LoggerFunc = defaultLogger
)

// defaultLogger sends daemon events to the default gonedaemon/log Logger,
// which is the syslog sink once the daemon has detached.
func defaultLogger(level int, message string) {
	log.Default().Log(syslog.Priority(level), message)
}

// SetLogger sets a custom log function. A nil LoggerFunc silences the
// daemon.
func SetLogger(f LoggerFunc) {
	logmu.Lock()
	defer logmu.Unlock()
	logger = f
}

// Log is used to log internal events, by default to the gonedaemon/log default
// Logger. You can call this your self if you need to. It's go-routine safe if the
// provided Log function is. However, it's not fast. Don't use this for logging
// not related to the daemon Controller.
func Log(level int, msg string) {
	logmu.RLock()
	if logger != nil {
		logger(level, msg)
	}
	logmu.RUnlock()
}
