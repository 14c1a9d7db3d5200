// Package manifest decodes the list of source documents that make up the
// preset catalog. Two encodings are accepted: the JSON array served next to
// the documents and an HCL file of "preset" blocks.
package manifest

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/a-sync/fnf-presets/manifest/hclspec"
	"github.com/a-sync/fnf-presets/preset"
)

// Entry references the documents of one preset. Empty references are absent.
type Entry struct {
	Required string `json:"required,omitempty"`
	Optional string `json:"optional,omitempty"`
}

// Ref returns the document reference for typ.
func (e Entry) Ref(typ preset.DocumentType) string {
	switch typ {
	case preset.DocumentRequired:
		return e.Required
	case preset.DocumentOptional:
		return e.Optional
	}
	return ""
}

// Document is a populated reference of a manifest entry.
type Document struct {
	Index int
	Type  preset.DocumentType
	Ref   string
}

// Documents flattens entries into their populated references, in manifest
// order with required before optional.
func Documents(entries []Entry) []Document {
	var docs []Document
	for i, e := range entries {
		for _, typ := range preset.DocumentTypes {
			ref := e.Ref(typ)
			if ref == "" {
				continue
			}
			docs = append(docs, Document{Index: i, Type: typ, Ref: ref})
		}
	}
	return docs
}

// Error reports a manifest that could not be read or decoded.
// No presets can be produced without a manifest.
type Error struct {
	Ref string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("manifest %q: %v", e.Ref, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsJSON reports whether the manifest at ref uses the JSON encoding.
func IsJSON(ref string) bool {
	return strings.EqualFold(path.Ext(ref), ".json")
}

// Decode decodes src, choosing the encoding from the extension of ref.
func Decode(src []byte, ref string) ([]Entry, error) {
	if IsJSON(ref) {
		es, err := DecodeJSON(src)
		if err != nil {
			return nil, &Error{Ref: ref, Err: err}
		}
		return es, nil
	}
	es, diags := DecodeHCL(hclparse.NewParser(), src, ref)
	if diags.HasErrors() {
		return nil, &Error{Ref: ref, Err: diags}
	}
	return es, nil
}

func DecodeJSON(src []byte) ([]Entry, error) {
	var es []Entry
	if err := json.Unmarshal(src, &es); err != nil {
		return nil, err
	}
	return es, nil
}

// DecodeHCL parses src with p, so that callers can render diagnostics
// against the parser's files.
func DecodeHCL(p *hclparse.Parser, src []byte, filename string) ([]Entry, hcl.Diagnostics) {
	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var m hclspec.Manifest
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &m)
	diags = append(diags, decodeDiags...)
	if diags.HasErrors() {
		return nil, diags
	}
	es := make([]Entry, len(m.Presets))
	for i, p := range m.Presets {
		es[i] = Entry{Required: p.Required, Optional: p.Optional}
	}
	return es, diags
}

// EncodeHCL renders entries as "preset" blocks.
func EncodeHCL(entries []Entry) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, e := range entries {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("preset", nil)
		b := block.Body()
		if e.Required != "" {
			b.SetAttributeValue("required", cty.StringVal(e.Required))
		}
		if e.Optional != "" {
			b.SetAttributeValue("optional", cty.StringVal(e.Optional))
		}
	}
	return f.Bytes()
}
