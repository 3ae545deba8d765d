package log

import (
	"io"
	"strconv"
	"strings"
)

// minformatter writes systemd/syslog compatible "<level>message k=v" lines,
// leaving timestamping to the log system reading them.
type minformatter struct {
	out    io.Writer
	prefix string
}

// PrefixOpt is a Min Formatter option setting a prefix put after the level.
func PrefixOpt(prefix string) HandlerOption {
	return func(c CloneableHandler) {
		if h, ok := c.(*minformatter); ok {
			h.prefix = prefix
		}
	}
}

// OutputOpt is a Min Formatter option changing the output Writer.
func OutputOpt(w io.Writer) HandlerOption {
	return func(c CloneableHandler) {
		if h, ok := c.(*minformatter); ok {
			h.out = w
		}
	}
}

// NewMinFormatter creates a formatting Handler writing "<N>prefix message k=v" lines.
// The Writer should be safe for concurrent use (see SyncWriter).
func NewMinFormatter(w io.Writer, options ...HandlerOption) CloneableHandler {
	f := &minformatter{out: w}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *minformatter) Clone(options ...HandlerOption) CloneableHandler {
	new := &minformatter{}
	*new = *f
	for _, option := range options {
		option(new)
	}
	return new
}

func (f *minformatter) Log(e *Event) error {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(strconv.Itoa(int(e.Lvl)))
	b.WriteByte('>')
	b.WriteString(f.prefix)
	b.WriteString(e.Msg)
	appendKV(&b, e.Data)
	b.WriteByte('\n')
	_, err := io.WriteString(f.out, b.String())
	return err
}

// formatLine renders the message and K/V data without level or prefix
func formatLine(e *Event) string {
	if len(e.Data) == 0 {
		return e.Msg
	}
	var b strings.Builder
	b.WriteString(e.Msg)
	appendKV(&b, e.Data)
	return b.String()
}
