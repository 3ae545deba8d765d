package log

import (
	"os"
	"sync"

	"github.com/One-com/gonedaemon/log/syslog"
)

// All the toplevel package functionality

// The default log context
var defaultLogger *Logger

var (
	sinkmu sync.Mutex
	sink   *SyslogHandler
)

// Default returns the default Logger
func Default() *Logger {
	return defaultLogger
}

func init() {
	// Before Init() the default Logger writes minimal lines to stderr.
	defaultLogger = NewLogger(LvlDEFAULT, stderrHandler(""))
}

func stderrHandler(prefix string) Handler {
	return NewMinFormatter(SyncWriter(os.Stderr), PrefixOpt(prefix))
}

// Minimal sets the default logger in minimal mode, where it doesn't timestamp
// but only emits systemd/syslog-compatible "<level>message" lines to stdout.
func Minimal() {
	defaultLogger.SetHandler(NewMinFormatter(SyncWriter(os.Stdout)))
	defaultLogger.DoTime(false)
}

// Init opens the syslog sink under the given name and makes the default Logger
// log to it. If syslog can't be reached, the default Logger logs minimal lines
// prefixed by the name to stderr and the error is returned.
// Calling Init again replaces the sink.
func Init(name string) error {
	sinkmu.Lock()
	defer sinkmu.Unlock()

	if sink != nil {
		sink.Close()
		sink = nil
	}
	h, err := NewSyslogHandler(name)
	if err != nil {
		defaultLogger.SetHandler(stderrHandler(name + ": "))
		return err
	}
	sink = h
	defaultLogger.SetHandler(h)
	return nil
}

// Shutdown closes any syslog sink opened by Init and returns the default Logger
// to stderr. It is safe to call even if Init was never called.
func Shutdown() {
	sinkmu.Lock()
	defer sinkmu.Unlock()

	if sink == nil {
		return
	}
	defaultLogger.SetHandler(stderrHandler(""))
	sink.Close()
	sink = nil
}

// With creates a child K/V logger of the default logger
func With(kv ...interface{}) *Logger {
	return defaultLogger.With(kv...)
}

// SetLevel set the default Logger log level.
func SetLevel(level syslog.Priority) bool {
	return defaultLogger.SetLevel(level)
}

// Level returns the default Loggers log level.
func Level() syslog.Priority {
	return defaultLogger.Level()
}

//--- level logger stuff

// Requests the default logger to create a log event
func EMERG(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_EMERG
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func ALERT(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_ALERT
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func CRIT(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_CRIT
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func ERROR(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_ERROR
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func WARN(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_WARN
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func NOTICE(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_NOTICE
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func INFO(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_INFO
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Requests the default logger to create a log event
func DEBUG(msg string, kv ...interface{}) {
	c := defaultLogger
	l := syslog.LOG_DEBUG
	if c.Does(l) {
		c.log(l, msg, kv...)
	}
}

// Printf logs with the default logger at its print level
func Printf(format string, v ...interface{}) {
	defaultLogger.Printf(format, v...)
}

// Println logs with the default logger at its print level
func Println(v ...interface{}) {
	defaultLogger.Println(v...)
}
