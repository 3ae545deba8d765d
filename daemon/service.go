package daemon

import (
	"github.com/One-com/gonedaemon/config"
)

// Service is the application run by a Controller.
//
// OnStart is called once after the process has detached, with the initial
// configuration. OnUpdate is then called every update interval. OnReload is
// called on SIGHUP (or a config file change with WatchConfig) with a freshly
// loaded configuration. OnStop is called once when the loop has ended.
//
// All calls are made from the go-routine calling Run, one at a time.
// An error from OnStart or OnUpdate stops the daemon with ExitFailure.
// Errors from OnReload and OnStop are logged.
type Service interface {
	OnStart(cfg *config.Snapshot) error
	OnUpdate() error
	OnReload(cfg *config.Snapshot) error
	OnStop() error
}

// ServiceFuncs makes a Service out of plain functions. Nil functions are
// skipped.
type ServiceFuncs struct {
	Start  func(cfg *config.Snapshot) error
	Update func() error
	Reload func(cfg *config.Snapshot) error
	Stop   func() error
}

// OnStart calls Start
func (s ServiceFuncs) OnStart(cfg *config.Snapshot) error {
	if s.Start == nil {
		return nil
	}
	return s.Start(cfg)
}

// OnUpdate calls Update
func (s ServiceFuncs) OnUpdate() error {
	if s.Update == nil {
		return nil
	}
	return s.Update()
}

// OnReload calls Reload
func (s ServiceFuncs) OnReload(cfg *config.Snapshot) error {
	if s.Reload == nil {
		return nil
	}
	return s.Reload(cfg)
}

// OnStop calls Stop
func (s ServiceFuncs) OnStop() error {
	if s.Stop == nil {
		return nil
	}
	return s.Stop()
}
