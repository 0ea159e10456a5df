package shepherd

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Optional is a value that may be missing. The zero value is empty.
//
// Optionals are used for everything read from a saved document: a value that
// is missing, null or of the wrong type unmarshals into an empty Optional
// instead of failing the whole document.
type Optional[T any] struct {
	value  T
	exists bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, exists: true}
}

func (o Optional[T]) Unpack() (T, bool) {
	return o.value, o.exists
}

func (o Optional[T]) Empty() bool {
	return !o.exists
}

// IsZero reports an empty optional, so that omitempty works on structs of
// optionals.
func (o Optional[T]) IsZero() bool {
	return !o.exists
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.exists {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	*o = Optional[T]{}
	if string(data) == "null" || json.Unmarshal(data, &v) != nil {
		return nil
	}
	*o = Some(v)
	return nil
}

func (o Optional[T]) MarshalYAML() (interface{}, error) {
	if !o.exists {
		return nil, nil
	}
	return o.value, nil
}

func (o *Optional[T]) UnmarshalYAML(node *yaml.Node) error {
	var v T
	*o = Optional[T]{}
	if node.ShortTag() == "!!null" || node.Decode(&v) != nil {
		return nil
	}
	*o = Some(v)
	return nil
}

// Optionals is a list of optional values. Unlike a plain slice, decoding it
// from YAML keeps null elements in place so that indices are preserved.
type Optionals[T any] []Optional[T]

func (l *Optionals[T]) UnmarshalYAML(node *yaml.Node) error {
	*l = nil
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	ret := make(Optionals[T], len(node.Content))
	for i, n := range node.Content {
		ret[i].UnmarshalYAML(n)
	}
	*l = ret
	return nil
}
