package config

import (
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Snapshot is an immutable key/value mapping read from a config file at one
// point in time. A nil *Snapshot behaves as an empty one.
type Snapshot struct {
	values map[string]string
}

// Empty returns a Snapshot without any keys.
func Empty() *Snapshot {
	return &Snapshot{values: map[string]string{}}
}

// Get returns the value of key, or "" if the key is missing.
func (s *Snapshot) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the value of key and whether it was present.
func (s *Snapshot) Lookup(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of keys.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Keys returns the keys in sorted order.
func (s *Snapshot) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of all the values.
func (s *Snapshot) Map() map[string]string {
	m := make(map[string]string, s.Len())
	if s != nil {
		for k, v := range s.values {
			m[k] = v
		}
	}
	return m
}

// GetBool returns the value associated with the key as a boolean.
// Missing or malformed values give false.
func (s *Snapshot) GetBool(key string) bool {
	return cast.ToBool(s.Get(key))
}

// GetInt returns the value associated with the key as an integer.
func (s *Snapshot) GetInt(key string) int {
	return cast.ToInt(s.Get(key))
}

// GetInt64 returns the value associated with the key as an integer.
func (s *Snapshot) GetInt64(key string) int64 {
	return cast.ToInt64(s.Get(key))
}

// GetFloat64 returns the value associated with the key as a float64.
func (s *Snapshot) GetFloat64(key string) float64 {
	return cast.ToFloat64(s.Get(key))
}

// GetDuration returns the value associated with the key as a duration,
// like "10s". A bare number is taken as nanoseconds.
func (s *Snapshot) GetDuration(key string) time.Duration {
	return cast.ToDuration(s.Get(key))
}

// GetStringSlice returns the value split at commas and whitespace,
// with empty elements dropped.
func (s *Snapshot) GetStringSlice(key string) []string {
	return cast.ToStringSlice(strings.FieldsFunc(s.Get(key), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}))
}

// GetIntE returns the value as an integer, or an error if it isn't one.
func (s *Snapshot) GetIntE(key string) (int, error) {
	return cast.ToIntE(s.Get(key))
}

// GetDurationE returns the value as a duration, or an error if it isn't one.
func (s *Snapshot) GetDurationE(key string) (time.Duration, error) {
	return cast.ToDurationE(s.Get(key))
}
