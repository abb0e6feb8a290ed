package dict

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

var (
	_ json.Marshaler   = (*Dict)(nil)
	_ json.Unmarshaler = (*Dict)(nil)
	_ yaml.Marshaler   = (*Dict)(nil)
	_ yaml.Unmarshaler = (*Dict)(nil)
)

// MarshalJSON encodes d as a JSON object with keys in order. A Dict that
// contains itself cannot be encoded.
func (d *Dict) MarshalJSON() ([]byte, error) {
	d.init()
	if d.cyclic() {
		return nil, errCircular
	}
	return d.entries.MarshalJSON()
}

// UnmarshalJSON merges a JSON object into d, in document order. Nested
// objects decode as map[string]any.
func (d *Dict) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	decoded := orderedmap.New[string, any]()
	if err := decoded.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %w", ErrType, err)
	}
	for pair := decoded.Oldest(); pair != nil; pair = pair.Next() {
		d.Set(pair.Key, pair.Value)
	}
	return nil
}

// MarshalYAML encodes d as a YAML mapping with keys in order.
func (d *Dict) MarshalYAML() (any, error) {
	if d.cyclic() {
		return nil, errCircular
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range d.All() {
		keyNode, valueNode := &yaml.Node{}, &yaml.Node{}
		if err := keyNode.Encode(k); err != nil {
			return nil, err
		}
		if err := valueNode.Encode(v); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML merges a YAML mapping into d, in document order. Nested
// mappings become *Dict values so their order survives too.
func (d *Dict) UnmarshalYAML(value *yaml.Node) error {
	d.init()
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: cannot decode YAML %s into a dictionary", ErrType, value.Tag)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valueNode := value.Content[i], value.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: line %d: mapping key must be a scalar", ErrType, keyNode.Line)
		}
		v, err := d.decodeYAML(valueNode)
		if err != nil {
			return err
		}
		d.Set(keyNode.Value, v)
	}
	return nil
}

func (d *Dict) decodeYAML(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		nested := &Dict{config: d.config}
		if err := nested.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return nested, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := d.decodeYAML(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Map returns the entries as a plain map. Nested Dict values, including those
// inside slices, are converted as well. A Dict reached more than once, through
// a cycle or not, converts to one shared map.
func (d *Dict) Map() map[string]any {
	return d.plain(make(map[*Dict]map[string]any))
}

func (d *Dict) plain(done map[*Dict]map[string]any) map[string]any {
	if out, ok := done[d]; ok {
		return out
	}
	out := make(map[string]any, d.Len())
	done[d] = out
	for k, v := range d.All() {
		out[k] = plain(v, done)
	}
	return out
}

func plain(v any, done map[*Dict]map[string]any) any {
	switch t := v.(type) {
	case *Dict:
		if t == nil {
			return nil
		}
		return t.plain(done)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item, done)
		}
		return out
	default:
		return v
	}
}

var errCircular = fmt.Errorf("%w: circular reference detected", ErrValue)

const (
	walking uint8 = iota + 1
	walked
)

// cyclic reports whether d can reach itself through nested Dict values or
// []any slices.
func (d *Dict) cyclic() bool {
	return reaches(d, make(map[*Dict]uint8))
}

func reaches(v any, state map[*Dict]uint8) bool {
	switch t := v.(type) {
	case *Dict:
		if t == nil {
			return false
		}
		switch state[t] {
		case walking:
			return true
		case walked:
			return false
		}
		state[t] = walking
		for _, item := range t.All() {
			if reaches(item, state) {
				return true
			}
		}
		state[t] = walked
	case []any:
		for _, item := range t {
			if reaches(item, state) {
				return true
			}
		}
	}
	return false
}

// Decode copies the entries into out, which must be a pointer to a struct or
// map. Struct fields are matched by their `dict` tag, falling back to a case
// insensitive field name match.
func (d *Dict) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "dict",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(d.Map())
}
