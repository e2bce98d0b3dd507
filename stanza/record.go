package stanza

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"
)

// Entry is a key/value pair of a Record.
//
// Value is a string, an int or a []string.
type Entry struct {
	Key   string
	Value any
}

// Record is the structured form of one stanza. Entries keep the order in
// which the fields first appeared in the source.
//
// Record encodes to a JSON object and to a YAML mapping, key order included.
type Record []Entry

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// GetString returns the value stored under key when it is a string.
func (r Record) GetString(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt returns the value stored under key when it is an int.
func (r Record) GetInt(key string) (int, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// GetList returns the value stored under key when it is a []string.
func (r Record) GetList(key string) ([]string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	l, ok := v.([]string)
	return l, ok
}

// Keys returns the record keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, e := range r {
		keys[i] = e.Key
	}
	return keys
}

// Set stores value under key. An existing key keeps its position and gets
// its value replaced, in which case Set returns true.
func (r *Record) Set(key string, value any) bool {
	for i := range *r {
		if (*r)[i].Key == key {
			(*r)[i].Value = value
			return true
		}
	}
	*r = append(*r, Entry{Key: key, Value: value})
	return false
}

// MarshalJSON implements json.Marshaler and keeps the key order.
//
// Encoders re-compact the output of MarshalJSON and may escape "<", ">" and
// "&" on the way. WriteJSON writes records verbatim.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := r.writeJSON(&b, false, 0); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteJSON writes records to w as a JSON array followed by a newline.
// Strings are not HTML escaped, so maintainers stay "Name <email>". When
// pretty is set, the array is indented by two spaces per level.
func WriteJSON(w io.Writer, records []Record, pretty bool) error {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(&b, pretty, 1)
		if err := r.writeJSON(&b, pretty, 1); err != nil {
			return err
		}
	}
	if len(records) > 0 {
		newline(&b, pretty, 0)
	}
	b.WriteString("]\n")
	_, err := w.Write(b.Bytes())
	return err
}

// writeJSON writes r as an object whose closing brace sits at depth.
func (r Record) writeJSON(b *bytes.Buffer, pretty bool, depth int) error {
	if len(r) == 0 {
		b.WriteString("{}")
		return nil
	}
	b.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, pretty, depth+1)
		k, err := json.MarshalNoEscape(e.Key)
		if err != nil {
			return err
		}
		b.Write(k)
		b.WriteByte(':')
		if pretty {
			b.WriteByte(' ')
		}
		if err := writeValue(b, e.Value, pretty, depth+1); err != nil {
			return fmt.Errorf("field %s: %w", e.Key, err)
		}
	}
	newline(b, pretty, depth)
	b.WriteByte('}')
	return nil
}

func writeValue(b *bytes.Buffer, value any, pretty bool, depth int) error {
	list, ok := value.([]string)
	if !ok {
		v, err := json.MarshalNoEscape(value)
		if err != nil {
			return err
		}
		b.Write(v)
		return nil
	}
	if len(list) == 0 {
		b.WriteString("[]")
		return nil
	}
	b.WriteByte('[')
	for i, s := range list {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, pretty, depth+1)
		v, err := json.MarshalNoEscape(s)
		if err != nil {
			return err
		}
		b.Write(v)
	}
	newline(b, pretty, depth)
	b.WriteByte(']')
	return nil
}

func newline(b *bytes.Buffer, pretty bool, depth int) {
	if !pretty {
		return
	}
	b.WriteByte('\n')
	for range depth {
		b.WriteString("  ")
	}
}

// MarshalYAML implements yaml.Marshaler and keeps the key order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range r {
		var v yaml.Node
		if err := v.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", e.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&v,
		)
	}
	return node, nil
}
