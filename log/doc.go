/*
Package log is the leveled logging sink of gonedaemon.

It logs events with the 8 syslog levels and optional key/value data, handing
them to a Handler for formatting and output:

	log.DEBUG("hi", "key", "value")
	log.INFO("hi again")
	log.NOTICE("more insisting hi")
	log.WARN("Hi?")
	log.ERROR("Hi!", "key1", "value1", "key2", "value2")
	log.CRIT("HI! ")
	log.ALERT("HEY THERE, WAKE UP!")

Out of the box the default Logger writes minimal "<level>message k=v" lines to
stderr. A daemon calls Init(name) once it has detached, which swaps the default
Logger over to the local syslog daemon (facility LOG_DAEMON, tagged with name), and
Shutdown() on its way out. Shutdown() is safe to call even if Init() never was.

Each *log.Logger has a log level, determining the maximum level for which events
are generated. It can be changed while in use:

	log.SetLevel(syslog.LOG_WARN)

Handlers are immutable once in use. To change output, swap in a new one with
SetHandler(), or have a CloneableHandler cloned with HandlerOptions applied by
ApplyHandlerOptions().

Key/value data which should be logged with every event goes into a child Logger:

	reqlog := l.With("session", id)
	reqlog.ERROR("Invalid session")
*/
package log
