/*
Package sd has the small parts of systemd integration a gonedaemon daemon needs.

https://www.freedesktop.org/software/systemd/man/daemon.html

Specifically it supports the following:

  - Notify the init system about startup completion or status updates via the
    sd_notify(3) interface.
  - Systemd watchdog support
  - Starting a new instance of the running program, which is how a Go process
    detaches without fork(2).

Package "sd" is not depended on systemd as such. If there's no notifiy socket,
calling sd.Notify() will of course fail with ErrSdNotifyNoSocket.
*/
package sd
