package s3sender

import (
	"bytes"
	"context"
	"io"
	"strings"
)

// ParameterContext is the sender's view of the host framework's message
// context. Per invocation, the sender asks it to resolve the declared
// parameter list into concrete values.
type ParameterContext interface {
	// Resolve produces values for the declared parameter names, given the
	// message body. Names without a value may simply be absent from the
	// result. A returned error is wrapped as a parameter error by the sender.
	Resolve(ctx context.Context, declared []string, message string) (Values, error)
}

// Values holds parameter values resolved for one invocation, keyed by
// parameter name.
type Values map[string]any

// String returns the named value rendered as a string, or fallback when the
// value is absent, nil, or empty.
func (v Values) String(name, fallback string) string {
	val, ok := v[name]
	if !ok || val == nil {
		return fallback
	}
	var s string
	switch t := val.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	case io.Reader:
		// A reader value has no useful string rendering; callers needing the
		// content use Reader.
		return fallback
	default:
		return fallback
	}
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Has reports whether the named parameter resolved to a non-nil value.
func (v Values) Has(name string) bool {
	val, ok := v[name]
	return ok && val != nil
}

// Reader returns the named value as an io.Reader. String and []byte values
// are wrapped; a nil or absent value yields (nil, false).
func (v Values) Reader(name string) (io.Reader, bool) {
	val, ok := v[name]
	if !ok || val == nil {
		return nil, false
	}
	switch t := val.(type) {
	case io.Reader:
		return t, true
	case []byte:
		return bytes.NewReader(t), true
	case string:
		return strings.NewReader(t), true
	default:
		return nil, false
	}
}

// MapContext is a ParameterContext backed by a fixed map. It serves hosts
// that resolve parameters ahead of time, and tests.
type MapContext map[string]any

// Resolve returns the values for the declared names that are present in the map.
func (m MapContext) Resolve(_ context.Context, declared []string, _ string) (Values, error) {
	values := make(Values, len(declared))
	for _, name := range declared {
		if val, ok := m[name]; ok {
			values[name] = val
		}
	}
	return values, nil
}
