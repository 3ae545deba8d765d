// Package signals maps OS signals to Actions run on an ordinary go-routine,
// never in signal delivery context.
package signals

import (
	"os"
	"os/signal"
	"reflect"
	"sync"
)

// Action is a function called when an OS signal is recieved.
// Actions are run one at a time, so they should return quickly.
type Action func()

// Mappings map OS signals to functions
type Mappings map[os.Signal]Action

// Handler is a running signal handler go-routine.
type Handler struct {
	chans    []chan os.Signal
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Allocate a 1-buffered channel for each signal and do a select
// over all channels - has to use reflect for dynamic numbers of select cases.
// The last case is the quit channel.
func (h *Handler) loop(cases []reflect.SelectCase, actions []Action) {
	defer close(h.done)
	for {
		chosen, _, _ := reflect.Select(cases)
		if chosen == len(actions) {
			return
		}
		actions[chosen]()
	}
}

// RunSignalHandler spawns a go-routine which will call the provided Actions
// when receiving the corresponding signals. Signals are registered before
// RunSignalHandler returns.
func RunSignalHandler(m Mappings) *Handler {

	h := &Handler{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	cases := make([]reflect.SelectCase, 0, len(m)+1)
	actions := make([]Action, 0, len(m))

	for sig, action := range m {
		sigch := make(chan os.Signal, 1)
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(sigch),
		})
		actions = append(actions, action)
		h.chans = append(h.chans, sigch)
		signal.Notify(sigch, sig)
	}
	cases = append(cases, reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(h.quit),
	})

	go h.loop(cases, actions)
	return h
}

// Stop unregisters the signals and waits for the handler go-routine to exit.
// Signals arriving after Stop get their default behaviour.
// It's safe to call Stop more than once, but not from inside an Action.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		for _, c := range h.chans {
			signal.Stop(c)
		}
		close(h.quit)
	})
	<-h.done
}

// Ignore makes the process ignore the signals.
func Ignore(sig ...os.Signal) {
	signal.Ignore(sig...)
}
