/*
Package daemon turns a program into a Unix background service and drives its life cycle.

https://www.freedesktop.org/software/systemd/man/daemon.html

Specifically it supports the following:

  - Detach from the terminal: start a detached copy, clear the umask, log to
    syslog, become session leader, change directory and close the standard files.
  - Call a Service at start, every update interval, on reload and at stop.
  - Stop on SIGTERM, waking the wait between updates at once.
  - Reload the --config file on SIGHUP, or when it changes (WatchConfig), without
    calling user code from the signal handler.
  - Exit with the code given to the last Stop.
  - Optionally lock a pid file and notify systemd via the sd_notify(3) interface,
    including watchdog pings.

A Go program can't fork(2) once its runtime is up, so detaching starts the program
again with a mark in its environment and the first process exits with
ExitSuccess. Code before Controller.Run is run by both processes and should
have no effects outside the process. Use Foreground with supervisors which
track the started process (systemd Type=simple or Type=notify) to skip detaching.

There can be only one Controller per process:

	func main() {
		d := daemon.New("helloworldd", daemon.UpdateInterval(time.Second))
		d.Run(daemon.ServiceFuncs{
			Update: func() error {
				log.INFO("Hello world")
				return nil
			},
		})
	}

Daemon events are logged via Log, which goes to gonedaemon/log unless SetLogger
says otherwise.

The package is for Unix systems only.
*/
package daemon
