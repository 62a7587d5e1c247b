package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known record keys.
const (
	FieldName           = "name"
	FieldCreatedAt      = "createdAt"
	FieldMainImage      = "mainImage"
	FieldDetailedImages = "detailedImages"
)

// Record is an ordered field map loaded from a fixture. Known keys are read
// through accessors; every other key is carried verbatim.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// NewRecord builds a record from alternating key/value pairs.
func NewRecord(kv ...interface{}) Record {
	r := Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		r.Set(key, kv[i+1])
	}
	return r
}

func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Set assigns key, appending it to the key order when new.
func (r *Record) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Delete(key string) {
	if _, exists := r.values[key]; !exists {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Record) Len() int { return len(r.keys) }

// Name returns the "name" field, or "" when it is missing or not a string.
func (r Record) Name() string {
	s, _ := r.values[FieldName].(string)
	return s
}

// Fields returns a shallow copy of the record as a plain map, suitable for
// handing to a document store.
func (r Record) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Clone returns a copy whose top-level keys can be changed independently.
func (r Record) Clone() Record {
	c := Record{keys: r.Keys(), values: r.Fields()}
	return c
}

// MarshalJSON writes the fields in key order.
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
			return nil, fmt.Errorf("record field %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var errNotObject = errors.New("record is not a JSON object")

// UnmarshalJSON decodes a JSON object, keeping the order of its top-level keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	*r = Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("record field %q: %w", key, err)
		}
		r.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	return nil
}
