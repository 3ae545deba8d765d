package log

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// KV is a map of key/value pairs to pass to a Logger context or to a log function for
// structured logging.
type KV map[string]interface{}

const errorKey = "LOG_ERROR"

// Take a vararg list of arguments and make it a slice if it isn't already.
func normalize(ctx []interface{}) []interface{} {
	if ctx == nil {
		return nil
	}

	// if the caller passed a KV object, then expand it
	if len(ctx) == 1 {
		if ctxMap, ok := ctx[0].(KV); ok {
			ctx = ctxMap.toArray()
		}
	}

	// no one wants to check for errors on logging functions, so instead of
	// erroring on bad input, make sure the length is even.
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}

	return ctx
}

// toArray returns the pairs sorted by key to give stable output
func (c KV) toArray() []interface{} {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	arr := make([]interface{}, 0, len(c)*2)
	for _, k := range keys {
		arr = append(arr, k, c[k])
	}
	return arr
}

// appendKV writes " k=v" for each pair. Values with spaces or quotes are quoted.
func appendKV(b *strings.Builder, data []interface{}) {
	for i := 0; i < len(data); i += 2 {
		b.WriteByte(' ')
		b.WriteString(keyString(data[i]))
		b.WriteByte('=')
		var v interface{}
		if i+1 < len(data) {
			v = data[i+1]
		}
		s := valueString(v)
		if strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	}
}

func keyString(k interface{}) string {
	switch x := k.(type) {
	case string:
		return x
	case fmt.Stringer:
		return safeString(x)
	default:
		return fmt.Sprint(x)
	}
}

func valueString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return x
	case error:
		if s, ok := safeError(x).(string); ok {
			return s
		}
		return "nil"
	case fmt.Stringer:
		return safeString(x)
	default:
		return fmt.Sprint(x)
	}
}

func safeString(str fmt.Stringer) (s string) {
	defer func() {
		if panicVal := recover(); panicVal != nil {
			if v := reflect.ValueOf(str); v.Kind() == reflect.Ptr && v.IsNil() {
				s = "NULL"
			} else {
				panic(panicVal)
			}
		}
	}()
	s = str.String()
	return
}

func safeError(err error) (s interface{}) {
	defer func() {
		if panicVal := recover(); panicVal != nil {
			if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr && v.IsNil() {
				s = nil
			} else {
				panic(panicVal)
			}
		}
	}()
	s = err.Error()
	return
}
