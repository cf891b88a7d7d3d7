// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package mason implements the Mason hypermedia format.
//
// Mason documents are plain JSON objects extended with two reserved
// properties, "@controls" and "@namespaces", which carry the hypermedia
// affordances of a resource. See https://github.com/JornWildt/Mason for
// the draft-2 specification this package follows.
package mason

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/swaggest/jsonschema-go"
)

// MediaType is the content type Mason documents are served with.
const MediaType = "application/vnd.mason+json"

// Reserved Mason property names.
const (
	ControlsKey   = "@controls"
	NamespacesKey = "@namespaces"
	ErrorKey      = "@error"
)

// Control is a single hypermedia control within a "@controls" object.
type Control struct {
	Href     string             `json:"href"`
	Title    string             `json:"title,omitempty"`
	Method   string             `json:"method,omitempty"`
	Encoding string             `json:"encoding,omitempty"`
	Schema   *jsonschema.Schema `json:"schema,omitempty"`
}

// ControlOption configures optional properties of a [Control].
type ControlOption func(*Control)

// Title sets the human readable title of a control.
func Title(s string) ControlOption {
	return func(c *Control) {
		c.Title = s
	}
}

// Method sets the HTTP method of a control. Mason defaults
// to GET when no method is given.
func Method(m string) ControlOption {
	return func(c *Control) {
		c.Method = m
	}
}

// Encoding sets the request body encoding of a control.
func Encoding(e string) ControlOption {
	return func(c *Control) {
		c.Encoding = e
	}
}

// Schema attaches a JSON schema describing the request body
// a control accepts.
func Schema(s *jsonschema.Schema) ControlOption {
	return func(c *Control) {
		c.Schema = s
	}
}

// Field is an ordered key value pair used to seed a [Document].
type Field struct {
	Key   string
	Value any
}

// F constructs a [Field].
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Document is a Mason document. Properties marshal in the order
// they were added, which keeps rendered representations stable
// and diffable.
type Document struct {
	keys   []string
	values map[string]any
}

// New constructs a [Document] from the given fields.
func New(fields ...Field) *Document {
	d := &Document{
		values: make(map[string]any),
	}
	for _, f := range fields {
		d.Set(f.Key, f.Value)
	}
	return d
}

// Set adds or replaces a property. Replacing keeps the
// property's original position.
func (d *Document) Set(key string, value any) *Document {
	_, ok := d.values[key]
	if !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Get returns the value of a property.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// AddNamespace registers a curie prefix under "@namespaces".
func (d *Document) AddNamespace(prefix, name string) *Document {
	ns := d.sub(NamespacesKey)
	ns.Set(prefix, map[string]string{"name": name})
	return d
}

// AddControl registers a hypermedia control under "@controls".
// Registering a control with an existing name replaces it.
func (d *Document) AddControl(name, href string, opts ...ControlOption) *Document {
	c := Control{Href: href}
	for _, opt := range opts {
		opt(&c)
	}

	cs := d.sub(ControlsKey)
	cs.Set(name, c)
	return d
}

// Control returns a previously registered control.
func (d *Document) Control(name string) (Control, bool) {
	cs, ok := d.values[ControlsKey].(*Document)
	if !ok {
		return Control{}, false
	}
	v, ok := cs.Get(name)
	if !ok {
		return Control{}, false
	}
	c, ok := v.(Control)
	return c, ok
}

func (d *Document) sub(key string) *Document {
	v, ok := d.values[key]
	if ok {
		return v.(*Document)
	}
	sub := New()
	d.Set(key, sub)
	return sub
}

// MarshalJSON implements [json.Marshaler].
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteResponse renders the document as a 200 response.
func (d *Document) WriteResponse(ctx context.Context, w http.ResponseWriter) error {
	return d.WriteStatus(ctx, w, http.StatusOK)
}

// WriteStatus renders the document with an explicit status code.
func (d *Document) WriteStatus(ctx context.Context, w http.ResponseWriter, status int) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
