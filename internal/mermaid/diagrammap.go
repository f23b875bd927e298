package mermaid

import (
	"bytes"
	"encoding/json"
	"iter"
	"strconv"
)

// DiagramMap is an insertion-ordered map of diagram name to repaired source.
// It marshals to a JSON object whose keys keep insertion order.
type DiagramMap struct {
	keys   []string
	values map[string]string
}

// NewDiagramMap returns an empty map.
func NewDiagramMap() *DiagramMap {
	return &DiagramMap{values: make(map[string]string)}
}

// Set stores value under key. Replacing an existing key keeps its position.
func (m *DiagramMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *DiagramMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *DiagramMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of diagrams.
func (m *DiagramMap) Len() int {
	return len(m.keys)
}

// All iterates over the entries in insertion order.
func (m *DiagramMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// addUnique stores value under name, appending a numeric suffix when name is
// already taken. It returns the key used.
func (m *DiagramMap) addUnique(name, value string) string {
	key := name
	for n := 2; ; n++ {
		if _, taken := m.values[key]; !taken {
			break
		}
		key = name + strconv.Itoa(n)
	}
	m.Set(key, value)
	return key
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *DiagramMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (m *DiagramMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *NewDiagramMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}
	_, err := dec.Token()
	return err
}
