/*
 * Copyright 2025 the AINFRA authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var errExpectedObject = fmt.Errorf("raw record: expected JSON object")

// ValueKind discriminates the runtime type of a telemetry value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindBool
	KindString
	KindArray
	KindObject
)

// Value is a tagged union over the kinds a plugin-supplied telemetry
// field can take. Classification code pattern-matches on Kind instead
// of repeating type switches everywhere.
type Value struct {
	Kind ValueKind
	Num  float64
	Bool bool
	Str  string
	Arr  []interface{}
	Obj  map[string]interface{}
}

// ValueOf classifies a decoded JSON value.
func ValueOf(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Value{Kind: KindNull}
	case float64:
		return Value{Kind: KindNumber, Num: t}
	case int:
		return Value{Kind: KindNumber, Num: float64(t)}
	case int64:
		return Value{Kind: KindNumber, Num: float64(t)}
	case bool:
		return Value{Kind: KindBool, Bool: t}
	case string:
		return Value{Kind: KindString, Str: t}
	case []interface{}:
		return Value{Kind: KindArray, Arr: t}
	case map[string]interface{}:
		return Value{Kind: KindObject, Obj: t}
	default:
		return Value{Kind: KindString, Str: fmt.Sprintf("%v", t)}
	}
}

// IsScalar reports whether the value is neither an object nor an array.
func (v Value) IsScalar() bool {
	return v.Kind != KindArray && v.Kind != KindObject
}

// Interface returns the underlying value as decoded.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str
	case KindArray:
		return v.Arr
	case KindObject:
		return v.Obj
	default:
		return nil
	}
}

// RawRecord is an untyped mapping from field name to value, as supplied
// by a device or plugin integration. Key order follows the source
// document; the classifier's backfill pass depends on it.
type RawRecord struct {
	keys   []string
	values map[string]Value
}

// NewRawRecord returns an empty record.
func NewRawRecord() *RawRecord {
	return &RawRecord{values: make(map[string]Value)}
}

// Len returns the number of fields. Safe on a nil record.
func (r *RawRecord) Len() int {
	if r == nil {
		return 0
	}

	return len(r.keys)
}

// Keys returns the field names in document order. The returned slice is
// a copy.
func (r *RawRecord) Keys() []string {
	if r == nil {
		return nil
	}

	out := make([]string, len(r.keys))
	copy(out, r.keys)

	return out
}

// Get returns the value for key and whether the field exists.
func (r *RawRecord) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}

	v, ok := r.values[key]

	return v, ok
}

// Set adds or replaces a field. New keys append to the document order.
func (r *RawRecord) Set(key string, v interface{}) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}

	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}

	r.values[key] = ValueOf(v)
}

// UnmarshalJSON decodes a JSON object preserving key order. A JSON null
// decodes to an empty record.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	r.keys = nil
	r.values = make(map[string]Value)

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errExpectedObject
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return errExpectedObject
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		r.Set(key, raw)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON encodes the record back in document order.
func (r *RawRecord) MarshalJSON() ([]byte, error) {
	if r == nil || len(r.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')

		valJSON, err := json.Marshal(r.values[key].Interface())
		if err != nil {
			return nil, err
		}

		buf.Write(valJSON)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
