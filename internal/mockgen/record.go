package mockgen

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record is one generated object. Keys keep their insertion order when
// encoded to JSON.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record with room for n keys.
func NewRecord(n int) Record {
	return Record{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// Set stores v under key, appending key if it is new.
func (r *Record) Set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under the exact key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Lookup returns the value whose key equals name ignoring case.
func (r Record) Lookup(name string) (any, bool) {
	if v, ok := r.values[name]; ok {
		return v, true
	}
	for _, k := range r.keys {
		if strings.EqualFold(k, name) {
			return r.values[k], true
		}
	}
	return nil, false
}

// Keys returns the record keys in order.
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the record as an object with keys in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
