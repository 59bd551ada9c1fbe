package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Document is a JSON object whose keys keep their original order.
type Document struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{values: make(map[string]json.RawMessage)}
}

// ParseDocument decodes a JSON object. Comments and trailing commas are
// tolerated.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("parsing JSON: top-level value is not an object")
	}

	doc := NewDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing JSON: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing JSON value of %q: %w", key, err)
		}
		doc.put(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return doc, nil
}

// Keys returns the keys in order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Decode unmarshals the value at key into v. It returns false if key is absent.
func (d *Document) Decode(key string, v any) (bool, error) {
	raw, ok := d.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

// Set stores v at key. New keys are appended; existing keys keep their place.
func (d *Document) Set(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	d.put(key, raw)
	return nil
}

// MarshalJSON encodes the document compactly, in key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encode(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, d.values[key]); err != nil {
			return nil, fmt.Errorf("compacting %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Bytes renders the document with a two-space indent and a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (d *Document) put(key string, raw json.RawMessage) {
	if _, seen := d.values[key]; !seen {
		d.keys = append(d.keys, key)
	}
	d.values[key] = raw
}

// encode marshals v without escaping <, > and &, which npm leaves as-is.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
