package log

import (
	"sync/atomic"

	"github.com/One-com/gonedaemon/log/syslog"
)

// LvlDEFAULT is the level at which Print*() functions log.
const LvlDEFAULT syslog.Priority = syslog.LOG_INFO

// lconfig holds the part of a Logger which can change during its life and
// therefore is only accessed with sync/atomic.
type lconfig struct {
	config uint32
}

// lconfig uint32 mask
const (
	levelshift = 3

	// 3 bit loglevel, 3 bit printlevel, 1 bit dotime
	maskLogLvl uint32 = 0x00000007 // The log level determining which events are generated
	maskDefLvl uint32 = 0x00000038 // The log level for Print*() statements
	maskDoTime uint32 = 0x00000080 // pre-timestamp events.

	defConfig uint32 = (uint32(LvlDEFAULT) << levelshift) | uint32(LvlDEFAULT)
)

// Logger is a leveled, structured logger with syslog levels.
//
// Don't create these your self. Use NewLogger() or With().
// The level and the Handler can be changed while the Logger is in use. Both
// go through atomic operations, but they can't be changed together atomically.
//
// A Logger created by With() shares level and Handler with its context parent,
// and adds its K/V data to all events it logs.
type Logger struct {
	// Name is attached to all events. Formatters may choose to log it.
	name string

	cfg *lconfig

	// atomic swappable Handler
	h *swapper

	// context parent, set by With()
	cparent *Logger

	// K/V data common to all events logged
	data []interface{}
}

// NewLogger creates a Logger logging at level to handler.
func NewLogger(level syslog.Priority, handler Handler) *Logger {
	return NewNamedLogger("", level, handler)
}

// NewNamedLogger creates a Logger which attach name to all events.
func NewNamedLogger(name string, level syslog.Priority, handler Handler) (l *Logger) {
	i := defConfig & ^maskLogLvl | (uint32(level) & maskLogLvl)
	l = &Logger{
		name: name,
		h:    newSwapper(),
		cfg:  &lconfig{config: i},
	}
	l.h.SwapHandler(handler)
	return l
}

// Unconditionally logs an event
func (l *Logger) log(level syslog.Priority, msg string, kv ...interface{}) error {
	var e *Event
	if kv == nil {
		e = l.newEvent(level, msg, nil)
	} else {
		e = l.newEvent(level, msg, normalize(kv))
	}
	return l.h.Log(e)
}

// Name returns the Logger name
func (l *Logger) Name() string {
	return l.name
}

// SetHandler atomically swaps in a different Handler
func (l *Logger) SetHandler(h Handler) {
	l.h.SwapHandler(h)
}

// Handler returns the current Handler
func (l *Logger) Handler() Handler {
	return l.h.handler()
}

// ApplyHandlerOptions clones the current Handler, applies the options to the
// clone and swaps it in. It is a no-op for Handlers which are not Cloneable.
func (l *Logger) ApplyHandlerOptions(opt ...HandlerOption) {
	l.h.ApplyHandlerOptions(opt...)
}

// With ties a sub-Context to the Logger.
func (l *Logger) With(kv ...interface{}) *Logger {
	d := normalize(kv)
	return &Logger{
		name: l.name,
		cfg:  l.cfg,
		h:    l.h,
		// Limiting the capacity ensures a new backing array if the slice must grow
		data:    d[:len(d):len(d)],
		cparent: l,
	}
}

// DoTime tries to turn on or off timestamping events on creation.
// Returning whether the change was successful
func (l *Logger) DoTime(doTime bool) bool {
	c := atomic.LoadUint32(&l.cfg.config)
	var n uint32
	if doTime {
		n = c | maskDoTime
	} else {
		n = c & ^maskDoTime
	}
	return atomic.CompareAndSwapUint32(&l.cfg.config, c, n)
}

// IncLevel tries to increase the log level
func (l *Logger) IncLevel() bool {
	c := atomic.LoadUint32(&l.cfg.config)
	n := c & maskLogLvl
	if n < uint32(syslog.LOG_DEBUG) {
		n++
	}
	n = (c & ^maskLogLvl) | n
	return atomic.CompareAndSwapUint32(&l.cfg.config, c, n)
}

// DecLevel tries to decrease the log level
func (l *Logger) DecLevel() bool {
	c := atomic.LoadUint32(&l.cfg.config)
	n := c & maskLogLvl
	if n > uint32(syslog.LOG_EMERG) {
		n--
	}
	n = (c & ^maskLogLvl) | n
	return atomic.CompareAndSwapUint32(&l.cfg.config, c, n)
}

// SetLevel set the Logger log level.
// returns success
func (l *Logger) SetLevel(level syslog.Priority) bool {
	if level > syslog.LOG_DEBUG {
		level = syslog.LOG_DEBUG
	}
	c := atomic.LoadUint32(&l.cfg.config)
	n := (c & ^maskLogLvl) | uint32(level)
	return atomic.CompareAndSwapUint32(&l.cfg.config, c, n)
}

// SetPrintLevel sets the level which Print*() methods are logging with.
func (l *Logger) SetPrintLevel(level syslog.Priority) bool {
	if level > syslog.LOG_DEBUG {
		level = syslog.LOG_DEBUG
	}
	c := atomic.LoadUint32(&l.cfg.config)
	n := (c & ^maskDefLvl) | (uint32(level) << levelshift)
	return atomic.CompareAndSwapUint32(&l.cfg.config, c, n)
}

// Does returns whether the Logger would generate an event at this level
func (l *Logger) Does(level syslog.Priority) bool {
	return level <= l.cfg.level()
}

// Level returns the current log level
func (l *Logger) Level() syslog.Priority {
	return l.cfg.level()
}

// PrintLevel returns the current log level of Print*() methods
func (l *Logger) PrintLevel() syslog.Priority {
	return l.cfg.printLevel()
}

/********************** lconfig operations *************************/

func (lc *lconfig) level() syslog.Priority {
	c := atomic.LoadUint32(&lc.config)
	return syslog.Priority(c & maskLogLvl)
}

func (lc *lconfig) printLevel() syslog.Priority {
	c := atomic.LoadUint32(&lc.config)
	return syslog.Priority(c & maskDefLvl >> levelshift)
}

func (lc *lconfig) doingTime() bool {
	c := atomic.LoadUint32(&lc.config)
	return c&maskDoTime != 0
}
