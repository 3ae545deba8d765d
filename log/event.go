package log

import (
	"time"

	"github.com/One-com/gonedaemon/log/syslog"
)

// Event is the basic log event type handed to Handlers.
// Do *not* instantiate these yourself or modify them once created.
type Event struct {
	Lvl  syslog.Priority // Level this event was logged at.
	Msg  string          // Basic log message.
	Data []interface{}   // Structured K/V data for this event, including context data.
	Name string          // Name of the logger generating this event.

	// Time is only evaluated if needed
	tok  bool
	time time.Time
}

// EventKeyNames holds keynames for fixed event fields, when needed (such as in JSON)
type EventKeyNames struct {
	Lvl  string
	Name string
	Time string
	Msg  string
}

var defaultKeyNames = &EventKeyNames{
	Lvl:  "_lvl",
	Name: "_name",
	Time: "_ts",
	Msg:  "_msg",
}

// Time returns the timestamp of an event.
// Events not timestamped at creation get the current time.
func (e *Event) Time() time.Time {
	if e.tok {
		return e.time
	}
	return time.Now()
}

// newEvent creates a new log event, gathering K/V data from any context parents.
func (l *Logger) newEvent(level syslog.Priority, msg string, data []interface{}) *Event {

	e := &Event{Lvl: level, Msg: msg, Name: l.name}

	if l.cfg.doingTime() {
		e.time = time.Now()
		e.tok = true
	}

	if l.cparent == nil && l.data == nil {
		e.Data = data
		return e
	}

	// tally up the kv length
	var i int
	for p := l; p != nil; p = p.cparent {
		i += len(p.data)
	}
	newdata := make([]interface{}, 0, i+len(data))
	// outermost context first
	var chain []*Logger
	for p := l; p != nil; p = p.cparent {
		chain = append(chain, p)
	}
	for j := len(chain) - 1; j >= 0; j-- {
		newdata = append(newdata, chain[j].data...)
	}
	e.Data = append(newdata, data...)
	return e
}
