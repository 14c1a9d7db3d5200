package preset

import "strings"

// DocumentType names the role a source document plays for a preset.
type DocumentType string

const (
	DocumentRequired DocumentType = "required"
	DocumentOptional DocumentType = "optional"
)

// DocumentTypes lists document types in manifest field order.
var DocumentTypes = []DocumentType{DocumentRequired, DocumentOptional}

// ModEntry is either a mod or a DLC item.
type ModEntry struct {
	// Name is the display name shown by the launcher.
	Name string `json:"name"`
	// Link is the workshop or store URL of the item.
	Link string `json:"link"`
}

// IsStoreDLC reports whether the link points at a Steam store app page,
// which is how the launcher references DLC content.
func (m ModEntry) IsStoreDLC() bool {
	return strings.Contains(m.Link, "store.steampowered.com/app/")
}

// Mods holds the three ordered buckets of a preset.
type Mods struct {
	DLC      []ModEntry `json:"dlc"`
	Required []ModEntry `json:"required"`
	Optional []ModEntry `json:"optional"`
}

// Preset is one merged mod loadout.
type Preset struct {
	// Identifier is the base file name of the required document. It is the
	// persistence key for selections and the name of exported files.
	Identifier string `json:"identifier"`

	// DisplayName comes from the required document and falls back
	// to Identifier.
	DisplayName string `json:"displayName"`

	Mods Mods `json:"mods"`
}

// Summary is a one-line overview of a preset, as shown in preset listings.
type Summary struct {
	Name             string
	Identifier       string
	Required         int
	DLC              []string
	OptionalSelected int
	OptionalTotal    int
}

// Summarize counts the preset's buckets. Selected holds the number of
// persisted optional selections for the preset.
func (p *Preset) Summarize(selected int) Summary {
	dlc := make([]string, len(p.Mods.DLC))
	for i, m := range p.Mods.DLC {
		dlc[i] = m.Name
	}
	return Summary{
		Name:             p.DisplayName,
		Identifier:       p.Identifier,
		Required:         len(p.Mods.Required),
		DLC:              dlc,
		OptionalSelected: selected,
		OptionalTotal:    len(p.Mods.Optional),
	}
}
