package archive

import (
	"archive/zip"
	"fmt"
	"path"

	"github.com/a-sync/fnf-presets/builder"
	"github.com/a-sync/fnf-presets/export"
	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

var _ builder.Builder = (*ArchiveBuilder)(nil)

// ArchiveBuilder writes documents into a zip archive.
type ArchiveBuilder struct {
	Archive *zip.Writer

	names map[string]bool
}

func NewArchiveBuilder(w *zip.Writer) *ArchiveBuilder {
	return &ArchiveBuilder{Archive: w, names: make(map[string]bool)}
}

func (b *ArchiveBuilder) Add(p *preset.Preset, sel selection.Set) error {
	if p == nil {
		return export.ErrNilPreset
	}
	name := path.Base(p.Identifier)
	if b.names[name] {
		return fmt.Errorf("%q: %w", name, builder.ErrDuplicateName)
	}
	b.names[name] = true
	w, err := b.Archive.Create(name)
	if err != nil {
		return err
	}
	return export.Write(w, p, sel)
}

// Close finishes the archive. The underlying writer is left open.
func (b *ArchiveBuilder) Close() error {
	return b.Archive.Close()
}
