package sd

import (
	"time"
)

// KeepAlive pings the systemd watchdog at half the requested period until done is
// closed. It returns false at once if no watchdog was asked for.
// Errors from Notify are passed to onError if it is not nil.
func KeepAlive(done <-chan struct{}, onError func(error)) bool {
	enabled, period := WatchdogEnabled()
	if !enabled {
		return false
	}
	ticker := time.NewTicker(period / 2)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return true
		case <-ticker.C:
			if err := NotifyStatus(StatusWatchdog, ""); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
