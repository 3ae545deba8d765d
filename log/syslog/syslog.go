// Package syslog holds the syslog priority levels used by gonedaemon/log,
// source code compatible with the standard library "log/syslog" constants.
package syslog

import (
	"fmt"
	stdsyslog "log/syslog"
	"strings"
)

type Priority stdsyslog.Priority

const (
	LOG_EMERG Priority = iota
	LOG_ALERT
	LOG_CRIT
	LOG_ERR
	LOG_WARNING
	LOG_NOTICE
	LOG_INFO
	LOG_DEBUG
)

// aliases

const (
	LOG_ERROR Priority = LOG_ERR
	LOG_WARN  Priority = LOG_WARNING
)

var names = [...]string{
	LOG_EMERG:   "emergency",
	LOG_ALERT:   "alert",
	LOG_CRIT:    "critical",
	LOG_ERR:     "error",
	LOG_WARNING: "warning",
	LOG_NOTICE:  "notice",
	LOG_INFO:    "info",
	LOG_DEBUG:   "debug",
}

// String returns the lower case name of the level
func (p Priority) String() string {
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "unknown_priority"
}

// ParsePriority maps a level name (as returned by String, case insensitive,
// also accepting "err", "warn", "crit" and "emerg") back to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emerg", "emergency":
		return LOG_EMERG, nil
	case "alert":
		return LOG_ALERT, nil
	case "crit", "critical":
		return LOG_CRIT, nil
	case "err", "error":
		return LOG_ERR, nil
	case "warn", "warning":
		return LOG_WARNING, nil
	case "notice":
		return LOG_NOTICE, nil
	case "info":
		return LOG_INFO, nil
	case "debug":
		return LOG_DEBUG, nil
	}
	return LOG_DEBUG, fmt.Errorf("unknown syslog priority %q", s)
}
