// temperatured appends the average CPU temperature to a history file every
// interval.
//
//	temperatured [--config /etc/temperatured/temperatured.conf]
//
// The config keys are "interval" (like "5s") and "history", the file name
// relative to /tmp.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/One-com/gonedaemon/config"
	"github.com/One-com/gonedaemon/daemon"
	"github.com/One-com/gonedaemon/log"
)

type settings struct {
	Interval time.Duration `mapstructure:"interval"`
	History  string        `mapstructure:"history"`
}

func defaults() settings {
	return settings{Interval: time.Second, History: "temperatured.txt"}
}

func loadSettings(cfg *config.Snapshot) (settings, error) {
	s := defaults()
	if err := cfg.Decode(&s); err != nil {
		return defaults(), err
	}
	if s.Interval <= 0 {
		s.Interval = defaults().Interval
	}
	return s, nil
}

type temperatured struct {
	d       *daemon.Controller
	zones   string
	history *os.File
}

func (t *temperatured) OnStart(cfg *config.Snapshot) error {
	log.INFO("on_start: temperatured started!")
	s, err := loadSettings(cfg)
	if err != nil {
		log.WARN("Bad configuration, using defaults", "err", err)
	}
	t.d.SetUpdateInterval(s.Interval)

	// relative to the working directory
	t.history, err = os.OpenFile(s.History, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	return err
}

func (t *temperatured) OnUpdate() error {
	celsius, err := cpuTemperature(t.zones)
	if err != nil {
		log.ERROR("Reading temperature", "err", err)
		return nil
	}
	_, err = fmt.Fprintf(t.history, "[%s]: %.1f°C (%s)\n",
		time.Now().Format("02-01-2006 03:04:05"), celsius, classify(celsius))
	return err
}

func (t *temperatured) OnReload(cfg *config.Snapshot) error {
	s, err := loadSettings(cfg)
	if err != nil {
		return err
	}
	t.d.SetUpdateInterval(s.Interval)
	log.INFO("on_reload: temperatured reloaded", "version", cfg.Get("version"), "interval", s.Interval)
	return nil
}

func (t *temperatured) OnStop() error {
	log.INFO("on_stop: temperatured stopped.")
	if t.history != nil {
		return t.history.Close()
	}
	return nil
}

func main() {
	d := daemon.New("temperatured",
		daemon.UpdateInterval(time.Second),
		daemon.WorkingDir("/tmp"),
		daemon.WatchConfig(true),
	)
	d.Run(&temperatured{d: d, zones: thermalRoot})
}
