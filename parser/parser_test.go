package parser_test

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/a-sync/fnf-presets/parser"
	"github.com/a-sync/fnf-presets/preset"
)

func modRow(name, href, label string) string {
	return fmt.Sprintf(`<tr data-type="ModContainer"><td data-type="DisplayName">%s</td>`+
		`<td><span class="from-steam">Steam</span></td>`+
		`<td><a href="%s" data-type="Link">%s</a></td></tr>`, name, href, label)
}

func document(name string, rows ...string) string {
	var meta string
	if name != "" {
		meta = fmt.Sprintf(`<meta name="arma:PresetName" content="%s" />`, name)
	}
	return `<?xml version="1.0" encoding="utf-8"?><html><head>` + meta +
		`</head><body><div class="mod-list"><table>` + strings.Join(rows, "") +
		`</table></div></body></html>`
}

func TestParse_File(t *testing.T) {
	f, err := os.Open("testdata/main.html")
	require.NoError(t, err)
	defer f.Close()

	var p parser.Parser
	doc, err := p.Parse(f)
	require.NoError(t, err)

	name, ok := doc.Name()
	assert.True(t, ok)
	assert.Equal(t, "FNF Main & Friends", name)

	entries := slices.Collect(doc.Entries())
	require.Len(t, entries, 4)

	assert.Equal(t, parser.KindMod, entries[0].Kind)
	assert.Equal(t, "CBA_A3", entries[0].DisplayName)
	assert.Equal(t, "https://steamcommunity.com/sharedfiles/filedetails/?id=450814997", entries[0].Link())
	assert.Equal(t, "ace", entries[1].DisplayName)
	assert.Equal(t, "Task Force Arrowhead Radio (BETA!!!)", entries[2].DisplayName)

	assert.Equal(t, parser.KindDLC, entries[3].Kind)
	assert.Equal(t, preset.ModEntry{
		Name: "S.O.G. Prairie Fire",
		Link: "https://store.steampowered.com/app/1227700",
	}, entries[3].ModEntry())
}

func TestParse_RowCount(t *testing.T) {
	var p parser.Parser
	for _, n := range []int{0, 1, 7, 50} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			rows := make([]string, n)
			for i := range rows {
				link := fmt.Sprintf("https://steamcommunity.com/sharedfiles/filedetails/?id=%d", i)
				rows[i] = modRow(fmt.Sprintf("mod %d", i), link, link)
			}
			doc := p.ParseString(document("Foo", rows...))

			entries := slices.Collect(doc.Entries())
			require.Len(t, entries, n)
			for i, e := range entries {
				assert.Equal(t, fmt.Sprintf("mod %d", i), e.DisplayName)
			}
		})
	}
}

func TestParse_Restartable(t *testing.T) {
	var p parser.Parser
	doc := p.ParseString(document("Foo", modRow("A", "L1", "L1"), modRow("B", "L2", "L2")))

	first := slices.Collect(doc.Entries())
	second := slices.Collect(doc.Entries())
	assert.Equal(t, first, second)

	// Breaking early must not disturb later iterations.
	for range doc.Entries() {
		break
	}
	assert.Len(t, slices.Collect(doc.Entries()), 2)
}

func TestParse_LinkMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := parser.Parser{Logger: zap.New(core)}
	doc := p.ParseString(document("Foo", modRow("A", "L1", "L1-label"), modRow("B", "L2", "L2")))

	entries := slices.Collect(doc.Entries())
	require.Len(t, entries, 2)
	assert.Equal(t, "L1", entries[0].Link())
	assert.Equal(t, "L1-label", entries[0].Label)

	mismatches := logs.FilterMessage("link mismatch").All()
	require.Len(t, mismatches, 1)
	assert.Equal(t, "L1", mismatches[0].ContextMap()["href"])
	assert.Equal(t, "L1-label", mismatches[0].ContextMap()["label"])
}

func TestParse_MissingName(t *testing.T) {
	var p parser.Parser

	_, ok := p.ParseString(document("", modRow("A", "L1", "L1"))).Name()
	assert.False(t, ok)

	doc := p.ParseString(`<html><head><meta name="arma:PresetName" content="" /></head></html>`)
	_, ok = doc.Name()
	assert.False(t, ok)
}

func TestParse_Malformed(t *testing.T) {
	var p parser.Parser
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"Empty", "", 0},
		{"PlainText", "not a preset at all", 0},
		{"Unclosed", `<html><table><tr data-type="ModContainer"><td data-type="DisplayName">A`, 0},
		{"MissingLink", `<table><tr data-type="ModContainer"><td data-type="DisplayName">A</td></tr></table>`, 0},
		{"UnknownRowType", `<table><tr data-type="ServerContainer"><td data-type="DisplayName">A</td><td><a href="L" data-type="Link">L</a></td></tr></table>`, 0},
		{"NoClosingTags", `<table><tr data-type="ModContainer"><td data-type="DisplayName">A<td><a href="L" data-type="Link">L</a>`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := p.ParseString(tt.raw)
			assert.Len(t, slices.Collect(doc.Entries()), tt.want)
		})
	}
}

func TestParse_RowsOutsideTable(t *testing.T) {
	var p parser.Parser
	tests := []struct {
		name string
		raw  string
	}{
		{"Bare", modRow("A", "L1", "L1") + modRow("B", "L2", "L2")},
		{"InDiv", `<div class="mod-list">` + modRow("A", "L1", "L1") + `</div><div>` + modRow("B", "L2", "L2") + `</div>`},
		{"Mixed", `<html><body><table>` + modRow("A", "L1", "L1") + `</table><p>` + modRow("B", "L2", "L2") + `</p></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := slices.Collect(p.ParseString(tt.raw).Entries())
			require.Len(t, entries, 2)
			assert.Equal(t, preset.ModEntry{Name: "A", Link: "L1"}, entries[0].ModEntry())
			assert.Equal(t, preset.ModEntry{Name: "B", Link: "L2"}, entries[1].ModEntry())
		})
	}
}
