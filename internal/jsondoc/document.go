// Package jsondoc is a small mutable JSON document model. A Document owns
// the memory behind every string written into its values; a Value is a slot
// inside a Document that holds a single JSON value.
//
// Documents are not safe for concurrent use.
package jsondoc

import (
	"io"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// Document owns a tree of Values and the strings stored in them.
type Document struct {
	root      *Value
	allocated int
	strings   int
}

// NewDocument returns a document whose root is an empty (null) value.
func NewDocument() *Document {
	return &Document{root: &Value{}}
}

// Root returns the root slot of the document.
func (d *Document) Root() *Value {
	return d.root
}

// NewValue returns a fresh empty slot owned by d. It is not attached to the
// tree; callers can fill it and later copy it into place with CopyFrom.
func (d *Document) NewValue() *Value {
	return &Value{}
}

// CopyString duplicates s into memory owned by the document, so the result
// never aliases caller storage.
func (d *Document) CopyString(s string) string {
	if s == "" {
		return ""
	}
	d.allocated += len(s)
	d.strings++
	return strings.Clone(s)
}

// Allocated returns the number of string bytes the document has copied.
func (d *Document) Allocated() int {
	return d.allocated
}

// Strings returns the number of strings the document has copied.
func (d *Document) Strings() int {
	return d.strings
}

// EncodeOptions controls Document.Encode.
type EncodeOptions struct {
	// Indent, when non-empty, produces multi-line output using it per level.
	Indent string
}

// Encode writes the document as JSON to w, followed by a newline.
func (d *Document) Encode(w io.Writer, opts EncodeOptions) error {
	var encOpts []jsontext.Options
	if opts.Indent != "" {
		encOpts = append(encOpts, jsontext.Multiline(true), jsontext.WithIndent(opts.Indent))
	}
	enc := jsontext.NewEncoder(w, encOpts...)
	return d.root.encode(enc)
}
