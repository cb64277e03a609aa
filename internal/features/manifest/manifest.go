package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileName is the manifest file looked up in every package directory
const FileName = "package.json"

// ErrNotFound is returned by Read when the manifest file does not exist
var ErrNotFound = errors.New("manifest not found")

// ParseError reports a manifest that is not a well-formed JSON object
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse manifest: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type field struct {
	key   string
	value json.RawMessage
}

// Manifest is a package.json document. Top-level keys keep their document
// order and values are held as raw JSON, so a rewrite only changes the
// fields that were explicitly set.
type Manifest struct {
	fields []field
}

// Parse decodes a manifest from JSON. The document must be an object.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ParseError{Err: fmt.Errorf("expected a JSON object, got %v", tok)}
	}

	m := &Manifest{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &ParseError{Err: fmt.Errorf("unexpected token %v", tok)}
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("invalid value for %q: %w", key, err)}
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("unexpected data after top-level object")}
	}

	return m, nil
}

// Read loads and parses the manifest at path
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Keys returns the top-level keys in document order
func (m *Manifest) Keys() []string {
	keys := make([]string, len(m.fields))
	for i, f := range m.fields {
		keys[i] = f.key
	}
	return keys
}

// Get returns the raw JSON value stored under key
func (m *Manifest) Get(key string) (json.RawMessage, bool) {
	for _, f := range m.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends the key when it is new
func (m *Manifest) Set(key string, value json.RawMessage) {
	for i := range m.fields {
		if m.fields[i].key == key {
			m.fields[i].value = value
			return
		}
	}
	m.fields = append(m.fields, field{key: key, value: value})
}

// Delete removes key from the manifest
func (m *Manifest) Delete(key string) {
	for i := range m.fields {
		if m.fields[i].key == key {
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return
		}
	}
}

// String returns a string-valued top-level field
func (m *Manifest) String(key string) (string, bool) {
	raw, ok := m.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Name returns the package name
func (m *Manifest) Name() (string, bool) {
	return m.String("name")
}

// Version returns the raw version value
func (m *Manifest) Version() (json.RawMessage, bool) {
	return m.Get("version")
}

// Dependency returns the raw version requirement declared for pkg in the
// dependencies mapping. A missing or non-object mapping has no entries.
func (m *Manifest) Dependency(pkg string) (json.RawMessage, bool) {
	raw, ok := m.Get("dependencies")
	if !ok {
		return nil, false
	}
	var deps map[string]json.RawMessage
	if err := json.Unmarshal(raw, &deps); err != nil {
		return nil, false
	}
	v, ok := deps[pkg]
	return v, ok
}

// Marshal encodes the manifest with 2-space indentation and a trailing newline
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	if len(m.fields) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, f := range m.fields {
		key, err := encodeString(f.key)
		if err != nil {
			return nil, fmt.Errorf("failed to encode key %q: %w", f.key, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		if err := json.Indent(&buf, f.value, "  ", "  "); err != nil {
			return nil, fmt.Errorf("failed to encode value for %q: %w", f.key, err)
		}
		if i < len(m.fields)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// WriteFile replaces the manifest at path with the encoded document
func (m *Manifest) WriteFile(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return writeFileAtomically(path, data)
}

// StringValue encodes s as a raw JSON string without HTML escaping
func StringValue(s string) json.RawMessage {
	b, err := encodeString(s)
	if err != nil {
		// encoding a Go string cannot fail
		panic(err)
	}
	return b
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
