package pack

import (
	"fmt"
	"iter"
	"path"

	"github.com/a-sync/fnf-presets/parser"
	"github.com/a-sync/fnf-presets/preset"
)

// Document is a parsed source document.
type Document interface {
	Name() (string, bool)
	Entries() iter.Seq[parser.Entry]
}

// Arena holds one preset builder per manifest index. Builders are created
// on first merge, so indexes without any merged document stay empty.
type Arena struct {
	slots []*preset.Preset
}

// NewArena returns an arena sized for a manifest of n entries.
func NewArena(n int) *Arena {
	return &Arena{slots: make([]*preset.Preset, n)}
}

// Merge folds a parsed document into the builder at index. Only a required
// document may set identity fields once the builder exists, so the result
// does not depend on the order documents arrive in.
func (a *Arena) Merge(index int, ref string, typ preset.DocumentType, doc Document) error {
	switch typ {
	case preset.DocumentRequired, preset.DocumentOptional:
	default:
		return fmt.Errorf("%q: %w", typ, preset.ErrUnknownDocumentType)
	}
	if index < 0 {
		return fmt.Errorf("negative preset index %d", index)
	}
	for len(a.slots) <= index {
		a.slots = append(a.slots, nil)
	}

	p := a.slots[index]
	if p == nil {
		p = &preset.Preset{
			Mods: preset.Mods{
				DLC:      []preset.ModEntry{},
				Required: []preset.ModEntry{},
				Optional: []preset.ModEntry{},
			},
		}
		stamp(p, ref, doc)
		a.slots[index] = p
	}
	if typ == preset.DocumentRequired {
		stamp(p, ref, doc)
	}

	for e := range doc.Entries() {
		m := e.ModEntry()
		switch {
		case e.Kind == parser.KindDLC:
			p.Mods.DLC = append(p.Mods.DLC, m)
		case e.Kind == parser.KindMod && typ == preset.DocumentRequired:
			p.Mods.Required = append(p.Mods.Required, m)
		case e.Kind == parser.KindMod:
			p.Mods.Optional = append(p.Mods.Optional, m)
		}
	}
	return nil
}

func stamp(p *preset.Preset, ref string, doc Document) {
	id := path.Base(ref)
	p.Identifier = id
	if name, ok := doc.Name(); ok {
		p.DisplayName = name
	} else {
		p.DisplayName = id
	}
}

// Slots returns the sparse view: one element per manifest index, nil where
// no document was merged.
func (a *Arena) Slots() []*preset.Preset {
	return a.slots
}

// Gaps returns the manifest indexes that produced no preset.
func (a *Arena) Gaps() []int {
	var gaps []int
	for i, p := range a.slots {
		if p == nil {
			gaps = append(gaps, i)
		}
	}
	return gaps
}

// Presets returns the merged presets in manifest order with gaps removed.
func (a *Arena) Presets() []preset.Preset {
	ps := make([]preset.Preset, 0, len(a.slots))
	for _, p := range a.slots {
		if p == nil {
			continue
		}
		ps = append(ps, *p)
	}
	return ps
}
