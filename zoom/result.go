package zoom

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind says which form a Result takes.
type Kind int

const (
	// KindStatus is a success response with an empty body.
	KindStatus Kind = iota
	// KindJSON is a success response whose body decoded as JSON.
	KindJSON
	// KindRaw is a success response whose body is not JSON.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindJSON:
		return "json"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is a normalized success response.
type Result struct {
	Kind Kind
	// StatusCode is set for every kind.
	StatusCode int
	// Value is the decoded body for KindJSON. Objects are map[string]any and
	// numbers are json.Number.
	Value any
	// Raw is the body for KindRaw.
	Raw []byte
}

// Object returns the JSON object held by a KindJSON result.
func (r *Result) Object() (map[string]any, bool) {
	if r == nil || r.Kind != KindJSON {
		return nil, false
	}
	obj, ok := r.Value.(map[string]any)
	return obj, ok
}

// Decode unmarshals the result's JSON value or raw body into v.
func (r *Result) Decode(v any) error {
	switch r.Kind {
	case KindJSON:
		data, err := json.Marshal(r.Value)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, v)
	case KindRaw:
		return json.Unmarshal(r.Raw, v)
	default:
		return fmt.Errorf("zoom: %s result has no body to decode", r.Kind)
	}
}

// MarshalJSON emits the status code, the JSON value, or the raw body as a
// JSON string.
func (r *Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindStatus:
		return json.Marshal(r.StatusCode)
	case KindRaw:
		return json.Marshal(string(r.Raw))
	default:
		return json.Marshal(r.Value)
	}
}

// decodeJSON decodes a complete JSON document, keeping numbers exact.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}
