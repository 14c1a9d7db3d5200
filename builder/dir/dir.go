package dir

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/a-sync/fnf-presets/builder"
	"github.com/a-sync/fnf-presets/export"
	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

var _ builder.Builder = (*DirBuilder)(nil)

// DirBuilder writes each document atomically into Dir.
type DirBuilder struct {
	Dir string

	names map[string]bool
}

func NewDirBuilder(dir string) *DirBuilder {
	return &DirBuilder{Dir: dir, names: make(map[string]bool)}
}

func (b *DirBuilder) Add(p *preset.Preset, sel selection.Set) error {
	if p == nil {
		return export.ErrNilPreset
	}
	name := filepath.Base(filepath.FromSlash(p.Identifier))
	if b.names[name] {
		return fmt.Errorf("%q: %w", name, builder.ErrDuplicateName)
	}
	b.names[name] = true
	var buf bytes.Buffer
	if err := export.Write(&buf, p, sel); err != nil {
		return err
	}
	return renameio.WriteFile(filepath.Join(b.Dir, name), buf.Bytes(), 0644)
}

func (b *DirBuilder) Close() error {
	return nil
}

// Path returns where the document of p is written.
func (b *DirBuilder) Path(p *preset.Preset) string {
	return filepath.Join(b.Dir, filepath.Base(filepath.FromSlash(p.Identifier)))
}
