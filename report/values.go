package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Values is an insertion-ordered mapping from variable name to value.
// The zero value is an empty mapping ready to use.
type Values struct {
	names []string
	vals  map[string]float64
}

// NewValues returns an empty mapping with room for n entries.
func NewValues(n int) Values {
	return Values{names: make([]string, 0, n), vals: make(map[string]float64, n)}
}

// Set stores v under name. A new name is appended; an existing one keeps its position.
func (v *Values) Set(name string, x float64) {
	if v.vals == nil {
		v.vals = map[string]float64{}
	}
	if _, ok := v.vals[name]; !ok {
		v.names = append(v.names, name)
	}
	v.vals[name] = x
}

// Get returns the value stored under name.
func (v Values) Get(name string) (float64, bool) {
	x, ok := v.vals[name]

	return x, ok
}

// Names returns the names in insertion order.
func (v Values) Names() []string { return append([]string(nil), v.names...) }

// Len returns the number of entries.
func (v Values) Len() int { return len(v.names) }

// Map returns an unordered copy.
func (v Values) Map() map[string]float64 {
	out := make(map[string]float64, len(v.names))
	for _, n := range v.names {
		out[n] = v.vals[n]
	}

	return out
}

// Range calls fn for each entry in order until fn returns false.
func (v Values) Range(fn func(name string, x float64) bool) {
	for _, n := range v.names {
		if !fn(n, v.vals[n]) {
			return
		}
	}
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := NewValues(len(v.names))
	for _, n := range v.names {
		out.Set(n, v.vals[n])
	}

	return out
}

// Equal reports whether both mappings hold the same entries in the same order.
func (v Values) Equal(o Values) bool {
	if len(v.names) != len(o.names) {
		return false
	}
	for i, n := range v.names {
		if o.names[i] != n || o.vals[n] != v.vals[n] {
			return false
		}
	}

	return true
}

// MarshalJSON encodes an object whose keys keep insertion order.
func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range v.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		x, err := json.Marshal(v.vals[n])
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", n, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(x)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping key order.
func (v *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("values: expected object, got %v", tok)
	}
	*v = Values{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var x float64
		if err = dec.Decode(&x); err != nil {
			return fmt.Errorf("value of %q: %w", name, err)
		}
		v.Set(name, x)
	}
	_, err = dec.Token()

	return err
}

// MarshalYAML encodes a mapping node whose keys keep insertion order.
func (v Values) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, n := range v.names {
		var val yaml.Node
		if err := val.Encode(v.vals[n]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n},
			&val,
		)
	}

	return node, nil
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("values: expected mapping, got kind %d", node.Kind)
	}
	*v = Values{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var x float64
		if err := node.Content[i+1].Decode(&x); err != nil {
			return fmt.Errorf("value of %q: %w", node.Content[i].Value, err)
		}
		v.Set(node.Content[i].Value, x)
	}

	return nil
}
