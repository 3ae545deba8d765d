package log

import (
	"fmt"

	"github.com/One-com/gonedaemon/log/syslog"
)

// Log is the simplest Logger method
func (l *Logger) Log(level syslog.Priority, msg string, kv ...interface{}) (err error) {
	if l.Does(level) {
		err = l.log(level, msg, kv...)
	}
	return
}

// EMERG - Log a message and optional KV values at syslog EMERG level.
// Not to be used by applications except when the system is unusable.
func (l *Logger) EMERG(msg string, kv ...interface{}) {
	lvl := syslog.LOG_EMERG
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// ALERT - Log a message and optional KV values at syslog ALERT level.
func (l *Logger) ALERT(msg string, kv ...interface{}) {
	lvl := syslog.LOG_ALERT
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// CRIT - Log a message and optional KV values at syslog CRIT level.
func (l *Logger) CRIT(msg string, kv ...interface{}) {
	lvl := syslog.LOG_CRIT
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// ERROR - Log a message and optional KV values at syslog ERROR level.
func (l *Logger) ERROR(msg string, kv ...interface{}) {
	lvl := syslog.LOG_ERROR
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// WARN - Log a message and optional KV values at syslog WARN level.
func (l *Logger) WARN(msg string, kv ...interface{}) {
	lvl := syslog.LOG_WARN
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// NOTICE - Log a message and optional KV values at syslog NOTICE level.
func (l *Logger) NOTICE(msg string, kv ...interface{}) {
	lvl := syslog.LOG_NOTICE
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// INFO - Log a message and optional KV values at syslog INFO level.
func (l *Logger) INFO(msg string, kv ...interface{}) {
	lvl := syslog.LOG_INFO
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// DEBUG - Log a message and optional KV values at syslog DEBUG level.
func (l *Logger) DEBUG(msg string, kv ...interface{}) {
	lvl := syslog.LOG_DEBUG
	if l.Does(lvl) {
		l.log(lvl, msg, kv...)
	}
}

// Printf logs at the print level, like the stdlib logger
func (l *Logger) Printf(format string, v ...interface{}) {
	lvl := l.PrintLevel()
	if l.Does(lvl) {
		l.log(lvl, fmt.Sprintf(format, v...))
	}
}

// Println logs at the print level, like the stdlib logger
func (l *Logger) Println(v ...interface{}) {
	lvl := l.PrintLevel()
	if l.Does(lvl) {
		s := fmt.Sprintln(v...)
		l.log(lvl, s[:len(s)-1])
	}
}
