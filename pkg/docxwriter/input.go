package docxwriter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one key/value pair of a JSON object
type Entry struct {
	Key   string
	Value interface{}
}

// Object is a JSON object with its key order preserved. Values are
// string, json.Number, bool, nil, []interface{} or Object.
type Object []Entry

// Get returns the value stored under key
func (o Object) Get(key string) (interface{}, bool) {
	for _, e := range o {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in document order
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, e := range o {
		keys[i] = e.Key
	}
	return keys
}

// MarshalJSON writes the object with its keys in order
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := marshalJSON(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalJSON encodes v without HTML escaping or a trailing newline
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Input is a decoded build request
type Input struct {
	Title    string
	FileName string
	// Content holds one group per section list entry. A content object is a
	// single group.
	Content []Object
	// Path is the file the input was read from, if any
	Path string
}

// LoadInput reads and decodes a JSON input file
func LoadInput(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Message: "failed to open input", Cause: err}
	}
	defer f.Close()

	in, err := ReadInput(f)
	if err != nil {
		var ie *InputError
		if errors.As(err, &ie) && ie.Path == "" {
			ie.Path = path
		}
		return nil, err
	}
	in.Path = path
	return in, nil
}

// ParseInput decodes a JSON input document
func ParseInput(data []byte) (*Input, error) {
	return ReadInput(bytes.NewReader(data))
}

// ReadInput decodes a JSON input document from r. Required fields are
// checked before it returns.
func ReadInput(r io.Reader) (*Input, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, &InputError{Message: "invalid JSON", Cause: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &InputError{Message: "invalid JSON: unexpected data after top-level value"}
	}

	obj, ok := root.(Object)
	if !ok {
		return nil, &InputError{Message: fmt.Sprintf("top-level value must be an object, got %s", typeName(root))}
	}

	in := &Input{}
	if in.Title, err = requiredString(obj, "title"); err != nil {
		return nil, err
	}
	if in.FileName, err = requiredString(obj, "file_name"); err != nil {
		return nil, err
	}

	content, ok := obj.Get("content")
	if !ok {
		return nil, NewInputError("content", "required field is missing")
	}
	switch c := content.(type) {
	case Object:
		in.Content = []Object{c}
	case []interface{}:
		in.Content = make([]Object, 0, len(c))
		for i, item := range c {
			group, ok := item.(Object)
			if !ok {
				return nil, &InputError{Field: fmt.Sprintf("content[%d]", i), Message: fmt.Sprintf("must be an object, got %s", typeName(item))}
			}
			in.Content = append(in.Content, group)
		}
	default:
		return nil, NewInputError("content", fmt.Sprintf("must be an object or a list of objects, got %s", typeName(content)))
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func requiredString(obj Object, field string) (string, error) {
	v, ok := obj.Get(field)
	if !ok {
		return "", NewInputError(field, "required field is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", NewInputError(field, fmt.Sprintf("must be a string, got %s", typeName(v)))
	}
	return s, nil
}

// Validate checks the required fields. It is called before anything is rendered.
func (in *Input) Validate() error {
	if in == nil {
		return NewInputError("", "no input")
	}
	if strings.TrimSpace(in.FileName) == "" {
		return &InputError{Path: in.Path, Field: "file_name", Message: "required field is empty"}
	}
	if in.FileName != filepath.Base(in.FileName) || in.FileName == "." || in.FileName == ".." {
		return &InputError{Path: in.Path, Field: "file_name", Message: fmt.Sprintf("%q must be a plain file name", in.FileName)}
	}
	if in.Content == nil {
		return &InputError{Path: in.Path, Field: "content", Message: "required field is missing"}
	}
	return nil
}

// decodeValue reads one JSON value from dec, keeping object key order.
// A repeated key keeps its first position and its last value.
func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var obj Object
			index := make(map[string]int)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if i, seen := index[key]; seen {
					obj[i].Value = value
					continue
				}
				index[key] = len(obj)
				obj = append(obj, Entry{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if obj == nil {
				obj = Object{}
			}
			return obj, nil
		case '[':
			list := []interface{}{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return tok, nil
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	case Object, map[string]interface{}:
		return "object"
	case []interface{}:
		return "list"
	}
	return fmt.Sprintf("%T", v)
}
