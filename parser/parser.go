// Package parser extracts preset names and mod rows from Arma 3 Launcher
// preset documents.
//
// Extraction is selector based and never validates the document: markup the
// selectors don't match simply contributes nothing. Documents are parsed as
// table body fragments, so rows keep their cells wherever they appear, even
// outside a table.
package parser

import (
	"io"
	"iter"
	"strings"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/a-sync/fnf-presets/preset"
)

// rowContext is the element rows are parsed in. A full document tree would
// drop rows that are not inside a table.
var rowContext = &html.Node{
	Type:     html.ElementNode,
	Data:     atom.Tbody.String(),
	DataAtom: atom.Tbody,
}

var (
	nameSel        = cascadia.MustCompile(`meta[name="arma:PresetName"]`)
	rowSel         = cascadia.MustCompile(`tr[data-type="ModContainer"], tr[data-type="DlcContainer"]`)
	displayNameSel = cascadia.MustCompile(`td[data-type="DisplayName"]`)
	linkSel        = cascadia.MustCompile(`a[data-type="Link"]`)
)

// Kind is the row type of an entry.
type Kind string

const (
	KindMod Kind = "Mod"
	KindDLC Kind = "Dlc"
)

// Entry is a single mod or DLC row.
type Entry struct {
	Kind        Kind
	DisplayName string
	// Href and Label both encode the link. They are expected to be equal.
	Href  string
	Label string
}

// Link returns the canonical link of the entry.
func (e Entry) Link() string {
	return e.Href
}

// ModEntry converts the entry into its data model form.
func (e Entry) ModEntry() preset.ModEntry {
	return preset.ModEntry{
		Name: e.DisplayName,
		Link: e.Link(),
	}
}

// Parser builds Documents. The zero value is ready to use and discards
// diagnostics.
type Parser struct {
	Logger *zap.Logger
}

// Parse reads a whole document from r. The only errors returned are
// read errors.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	nodes, err := html.ParseFragment(r, rowContext)
	if err != nil {
		return nil, err
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Document{nodes: nodes, log: log}, nil
}

// ParseString parses raw document text.
func (p *Parser) ParseString(raw string) *Document {
	// strings.Reader never fails.
	d, _ := p.Parse(strings.NewReader(raw))
	return d
}

// Document is a parsed preset document.
type Document struct {
	nodes []*html.Node
	log   *zap.Logger
}

// Name returns the preset name carried by the name metadata marker.
// An empty name counts as missing.
func (d *Document) Name() (string, bool) {
	for _, n := range d.nodes {
		m := nameSel.MatchFirst(n)
		if m == nil {
			continue
		}
		name := attr(m, "content")
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}

// Entries returns the mod and DLC rows in document order. The sequence is
// lazy and can be ranged over any number of times. A row whose href and
// label disagree is logged and still yielded.
func (d *Document) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		visit := func(n *html.Node) bool {
			if !rowSel.Match(n) {
				return true
			}
			e, ok := rowEntry(n)
			if !ok {
				d.log.Debug("incomplete row", zap.String("type", attr(n, "data-type")))
				return true
			}
			if e.Href != e.Label {
				d.log.Warn("link mismatch",
					zap.String("name", e.DisplayName),
					zap.String("href", e.Href),
					zap.String("label", e.Label),
				)
			}
			return yield(e)
		}
		for _, n := range d.nodes {
			if !walk(n, visit) {
				return
			}
		}
	}
}

func rowEntry(row *html.Node) (Entry, bool) {
	kind := Kind(strings.TrimSuffix(attr(row, "data-type"), "Container"))
	name := displayNameSel.MatchFirst(row)
	link := linkSel.MatchFirst(row)
	if name == nil || link == nil {
		return Entry{}, false
	}
	return Entry{
		Kind:        kind,
		DisplayName: strings.TrimSpace(text(name)),
		Href:        strings.TrimSpace(attr(link, "href")),
		Label:       strings.TrimSpace(text(link)),
	}, true
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		if a.Key != key {
			continue
		}
		return a.Val
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
