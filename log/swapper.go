package log

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNotLogged is returned by Log functions if there's no Handler to log an event.
var ErrNotLogged = errors.New("No handler found to log event")

// CloneableHandler is a Handler which can clone itself for modification with
// the purpose of being swapped in to replace the current handler.
// The framework promises not to modify a Handler after it's in use.
type CloneableHandler interface {
	Handler
	Clone(options ...HandlerOption) CloneableHandler
}

// HandlerOption is an option-function provided by the package of a Handler
type HandlerOption func(CloneableHandler)

// Indirection of Log() calls through a Handler which can be atomically swapped
type swapper struct {
	mu  sync.Mutex // Locked by any read-modify-write of val
	val atomic.Value
}

type valueStruct struct {
	Handler
}

func newSwapper() (s *swapper) {
	s = new(swapper)
	s.val.Store(valueStruct{})
	return
}

func (h *swapper) Log(e *Event) error {
	v, _ := h.val.Load().(valueStruct)
	if v.Handler == nil {
		return ErrNotLogged
	}
	return v.Handler.Log(e)
}

func (h *swapper) SwapHandler(new Handler) (old Handler) {
	h.mu.Lock()
	old = h.val.Load().(valueStruct).Handler
	h.val.Store(valueStruct{Handler: new})
	h.mu.Unlock()
	return
}

func (h *swapper) handler() Handler {
	return h.val.Load().(valueStruct).Handler
}

func (h *swapper) ApplyHandlerOptions(opt ...HandlerOption) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clo, ok := h.val.Load().(valueStruct).Handler.(CloneableHandler); ok {
		h.val.Store(valueStruct{Handler: clo.Clone(opt...)})
	}
}
