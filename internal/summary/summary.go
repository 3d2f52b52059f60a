// Package summary implements the tagged parse step shared by the report
// generators: raw JSON summaries are decoded into a keyed mapping and then
// partitioned into sentinel entries (aggregates and metadata), data entries and
// skipped entries before any table rows are built.
package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
)

var (
	// ErrEmpty indicates the summary input had no content.
	ErrEmpty = errors.New("summary is empty")
	// ErrNotObject indicates the summary decoded to something other than a JSON object.
	ErrNotObject = errors.New("summary is not a JSON object")
)

// Object is a JSON object whose member values are decoded lazily.
type Object map[string]json.RawMessage

// Number returns the member as a float64 when it is a JSON number.
// Booleans, strings and null are not numbers.
func (o Object) Number(key string) (float64, bool) {
	raw, ok := o[key]
	if !ok {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Count returns the member as a non-negative integer. Missing, non-numeric and
// negative values yield 0; fractions are truncated.
func (o Object) Count(key string) int64 {
	f, ok := o.Number(key)
	if !ok {
		return 0
	}
	return ClampCount(f)
}

// ClampCount truncates f to an integer in [0, math.MaxInt64].
func ClampCount(f float64) int64 {
	switch {
	case f < 0 || math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(f)
	}
}

// String returns the member when it is a JSON string.
func (o Object) String(key string) (string, bool) {
	raw, ok := o[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Object returns the member when it is a JSON object.
func (o Object) Object(key string) (Object, bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}
	return decodeObject(raw)
}

func decodeObject(raw json.RawMessage) (Object, bool) {
	var obj Object
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// Entry is a data entry of a summary: a non-sentinel key whose value is an object.
type Entry struct {
	Key   string
	Value Object
}

// Summary is a parsed and partitioned JSON summary.
type Summary struct {
	sentinels map[string]Object
	// Entries holds data entries sorted by key.
	Entries []Entry
	// Skipped lists keys dropped because their value was not an object, sorted.
	Skipped []string
}

// Sentinel returns the sentinel entry for key when it was present and an object.
func (s *Summary) Sentinel(key string) (Object, bool) {
	if s == nil {
		return nil, false
	}
	obj, ok := s.sentinels[key]
	return obj, ok
}

// Len reports the number of data entries.
func (s *Summary) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Empty reports whether the summary had no members at all.
func (s *Summary) Empty() bool {
	return s == nil || (len(s.sentinels) == 0 && len(s.Entries) == 0 && len(s.Skipped) == 0)
}

// Parse decodes data and partitions its members. Keys listed in sentinels are
// never treated as data entries.
func Parse(data []byte, sentinels ...string) (*Summary, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	if raw == nil {
		return nil, ErrNotObject
	}

	isSentinel := make(map[string]bool, len(sentinels))
	for _, key := range sentinels {
		isSentinel[key] = true
	}

	s := &Summary{sentinels: make(map[string]Object)}
	for key, value := range raw {
		obj, ok := decodeObject(value)
		switch {
		case isSentinel[key]:
			if ok {
				s.sentinels[key] = obj
			}
		case ok:
			s.Entries = append(s.Entries, Entry{Key: key, Value: obj})
		default:
			s.Skipped = append(s.Skipped, key)
		}
	}

	sort.Slice(s.Entries, func(i, j int) bool { return s.Entries[i].Key < s.Entries[j].Key })
	sort.Strings(s.Skipped)
	return s, nil
}

// ParseFile reads and parses a summary file.
func ParseFile(path string, sentinels ...string) (*Summary, error) {
	// #nosec G304 -- summary paths come from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, sentinels...)
}
