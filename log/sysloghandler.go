package log

import (
	stdsyslog "log/syslog"

	"github.com/One-com/gonedaemon/log/syslog"
)

// SyslogHandler is a Formatter sending events to the local syslog daemon
// with the facility LOG_DAEMON, tagged with a daemon name.
type SyslogHandler struct {
	w *stdsyslog.Writer
}

// NewSyslogHandler connects to the local syslog daemon. The tag is normally the
// name of the daemon. Messages include the pid of the process.
func NewSyslogHandler(tag string) (*SyslogHandler, error) {
	w, err := stdsyslog.New(stdsyslog.LOG_DAEMON|stdsyslog.LOG_INFO, tag)
	if err != nil {
		return nil, err
	}
	return &SyslogHandler{w: w}, nil
}

func (h *SyslogHandler) Log(e *Event) error {
	line := formatLine(e)
	switch e.Lvl {
	case syslog.LOG_EMERG:
		return h.w.Emerg(line)
	case syslog.LOG_ALERT:
		return h.w.Alert(line)
	case syslog.LOG_CRIT:
		return h.w.Crit(line)
	case syslog.LOG_ERR:
		return h.w.Err(line)
	case syslog.LOG_WARNING:
		return h.w.Warning(line)
	case syslog.LOG_NOTICE:
		return h.w.Notice(line)
	case syslog.LOG_INFO:
		return h.w.Info(line)
	default:
		return h.w.Debug(line)
	}
}

// Close closes the connection to the syslog daemon.
func (h *SyslogHandler) Close() error {
	return h.w.Close()
}
