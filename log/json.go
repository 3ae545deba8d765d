package log

import (
	"encoding/json"
	"errors"
	"io"
	"time"
)

type jsonformatter struct {
	out        io.Writer
	timelayout string
	keynames   *EventKeyNames // Names for basic event fields
}

// Clone returns a clone of the current handler for tweaking and swapping in
func (f *jsonformatter) Clone(options ...HandlerOption) CloneableHandler {
	new := &jsonformatter{}
	*new = *f
	for _, option := range options {
		option(new)
	}
	return new
}

// KeyNamesOpt is a JSON Formatter Option to set the key names of fixed event fields
func KeyNamesOpt(keys *EventKeyNames) HandlerOption {
	return func(c CloneableHandler) {
		if h, ok := c.(*jsonformatter); ok {
			h.keynames = keys
		}
	}
}

// TimeFormatOpt is a JSON Formatter Option to set timestamp formatting
func TimeFormatOpt(layout string) HandlerOption {
	return func(c CloneableHandler) {
		if h, ok := c.(*jsonformatter); ok {
			h.timelayout = layout
		}
	}
}

// NewJSONFormatter creates a new formatting Handler writing log events as JSON to the supplied Writer.
func NewJSONFormatter(w io.Writer, options ...HandlerOption) CloneableHandler {
	f := &jsonformatter{keynames: defaultKeyNames, out: w, timelayout: time.RFC3339Nano}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *jsonformatter) Log(e *Event) error {
	x := len(e.Data)
	m := make(map[string]interface{}, x/2+4)
	m[f.keynames.Lvl] = e.Lvl
	m[f.keynames.Msg] = e.Msg
	if f.keynames.Name != "" && e.Name != "" {
		m[f.keynames.Name] = e.Name
	}
	if f.keynames.Time != "" {
		m[f.keynames.Time] = e.Time().Format(f.timelayout)
	}
	for i := 0; i < x; i += 2 {
		k := e.Data[i]
		var v interface{} = errors.New("MISSING")
		if i+1 < len(e.Data) {
			v = e.Data[i+1]
		}
		if err, ok := v.(error); ok {
			v = safeError(err)
		}
		m[keyString(k)] = v
	}
	return json.NewEncoder(f.out).Encode(m)
}
