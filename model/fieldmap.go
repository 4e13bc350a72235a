package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// FieldMap is the open mapping of caller-defined keys to typed values
// attached to a term. It serializes to a JSON object in the terms table's
// additional_fields TEXT column.
type FieldMap map[string]Value

// Keys returns the field keys in sorted order.
func (m FieldMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the map. Array payloads are shared,
// which is fine because values are treated as immutable.
func (m FieldMap) Clone() FieldMap {
	if m == nil {
		return nil
	}
	out := make(FieldMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge applies a patch on top of the map and returns the result.
// A nil patch entry deletes the key; this is the documented mechanism
// for clearing a field. The receiver is not modified.
func (m FieldMap) Merge(patch map[string]*Value) FieldMap {
	out := m.Clone()
	if out == nil {
		out = make(FieldMap, len(patch))
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = *v
	}
	return out
}

// Value implements driver.Valuer, serializing the map as JSON text.
func (m FieldMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal additional fields: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner, reading the JSON text column back.
func (m *FieldMap) Scan(src interface{}) error {
	var data []byte
	switch x := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = x
	case string:
		data = []byte(x)
	default:
		return fmt.Errorf("cannot scan %T into FieldMap", src)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}

	out := make(FieldMap)
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal additional fields: %w", err)
	}
	if len(out) == 0 {
		*m = nil
		return nil
	}
	*m = out
	return nil
}
