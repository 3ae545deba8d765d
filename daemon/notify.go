package daemon

import (
	"fmt"

	"github.com/One-com/gonedaemon/sd"
)

// sdNotify sends lines to systemd if NotifySystemd is on.
func (c *Controller) sdNotify(lines ...string) {
	if !c.notify {
		return
	}
	err := sd.Notify(0, lines...)
	if err == sd.ErrSdNotifyNoSocket {
		Log(LvlDEBUG, "No systemd notify socket")
		return
	}
	if err != nil {
		Log(LvlWARN, fmt.Sprintf("systemd notify: %s", err.Error()))
	}
}

// ready tells systemd we're up and starts any watchdog pinger.
func (c *Controller) ready() {
	if !c.notify {
		return
	}
	c.sdNotify("READY=1", fmt.Sprintf("MAINPID=%d", c.Pid()), "STATUS=Running")

	if enabled, period := sd.WatchdogEnabled(); enabled {
		Log(LvlINFO, fmt.Sprintf("Pinging systemd watchdog every %s", period/2))
		c.sdDone = make(chan struct{})
		c.sdWaiter.Add(1)
		go func(done chan struct{}) {
			defer c.sdWaiter.Done()
			sd.KeepAlive(done, func(err error) {
				Log(LvlWARN, fmt.Sprintf("systemd watchdog: %s", err.Error()))
			})
		}(c.sdDone)
	}
}

func (c *Controller) notifyReloading() {
	c.sdNotify("RELOADING=1", "STATUS=Reloading")
}

func (c *Controller) notifyReady() {
	c.sdNotify("READY=1", "STATUS=Running")
}

func (c *Controller) notifyStopping() {
	c.sdNotify("STOPPING=1", "STATUS=Stopping")
}
