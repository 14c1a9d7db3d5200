package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

func TestSummaryRow(t *testing.T) {
	p := &preset.Preset{
		Identifier:  "main.html",
		DisplayName: "FNF Main",
		Mods: preset.Mods{
			DLC:      []preset.ModEntry{{Name: "Contact", Link: "https://store.steampowered.com/app/1021790"}},
			Required: []preset.ModEntry{{Name: "CBA_A3", Link: "L1"}, {Name: "ACE", Link: "L2"}},
			Optional: []preset.ModEntry{{Name: "JSRS", Link: "L3"}, {Name: "Blastcore", Link: "L4"}},
		},
	}
	sel := selection.Set{"L3": true, "gone": true}

	row := summaryRow(p.Summarize(countSelected(p, sel)))
	assert.Equal(t, []string{"FNF Main", "2 + Contact", "1/2", "main.html"}, row)
}

func TestModName(t *testing.T) {
	assert.Equal(t, "Contact (DLC)", modName(preset.ModEntry{Name: "Contact", Link: "https://store.steampowered.com/app/1021790"}))
	assert.Equal(t, "ACE", modName(preset.ModEntry{Name: "ACE", Link: "https://steamcommunity.com/sharedfiles/filedetails/?id=463939057"}))
}

func TestMark(t *testing.T) {
	sel := selection.Set{"L1": true}
	assert.Equal(t, "[x]", mark(sel, "L1"))
	assert.Equal(t, "[ ]", mark(sel, "L2"))
}
