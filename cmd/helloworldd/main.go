// helloworldd logs a greeting every minute.
//
//	helloworldd [--foreground] [--config /etc/helloworldd/helloworldd.conf]
//
// systemctl reload helloworldd re-reads the configuration.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/One-com/gonedaemon/config"
	"github.com/One-com/gonedaemon/daemon"
	"github.com/One-com/gonedaemon/log"
)

// service greets every update. In the foreground systemd reads stdout, so
// once Run has opened the log, logging switches to minimal lines there.
func service(foreground bool) daemon.ServiceFuncs {
	return daemon.ServiceFuncs{
		Start: func(cfg *config.Snapshot) error {
			if foreground {
				log.Minimal()
			}
			log.INFO(fmt.Sprintf("on_start: helloworldd version %s started!", cfg.Get("version")))
			return nil
		},
		Update: func() error {
			log.INFO("Hello, World!")
			return nil
		},
		Reload: func(cfg *config.Snapshot) error {
			log.INFO("on_reload: helloworldd reloaded", "version", cfg.Get("version"))
			return nil
		},
		Stop: func() error {
			log.INFO("on_stop: helloworldd stopped.")
			return nil
		},
	}
}

func main() {
	flags := pflag.NewFlagSet("helloworldd", pflag.ExitOnError)
	foreground := flags.Bool("foreground", false, "don't detach (systemd Type=notify)")
	pidPath := flags.String("pidfile", "", "pid file to lock")
	// parsed by the daemon, declared here for --help
	flags.String("config", "", "configuration file")
	flags.Parse(os.Args[1:])

	d := daemon.New("helloworldd",
		daemon.UpdateInterval(time.Minute),
		daemon.WorkingDir("/"),
		daemon.Foreground(*foreground),
		daemon.NotifySystemd(*foreground),
		daemon.PidFile(*pidPath),
	)
	d.Run(service(*foreground))
}
