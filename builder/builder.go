// Package builder delivers exported preset documents.
package builder

import (
	"errors"

	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

var ErrDuplicateName = errors.New("duplicate document name")

// Builder collects exported presets. Each preset becomes one document
// named after its identifier.
type Builder interface {
	Add(p *preset.Preset, sel selection.Set) error
	Close() error
}
