// Package export renders presets as Arma 3 Launcher preset documents.
package export

import (
	"bytes"
	"errors"
	"html"
	"html/template"
	"io"

	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

var ErrNilPreset = errors.New("nil preset")

// Prolog starts every exported document. It is written ahead of the
// template, which would escape it.
const Prolog = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

const presetTemplate = `<html>
  <head>
    <meta name="arma:Type" content="preset" />
    <meta name="arma:PresetName" content="{{.Name}}" />
    <meta name="generator" content="Arma 3 Launcher - https://a-sync.github.io/fnf-presets" />
    <title>Arma 3</title>
    <link href="https://fonts.googleapis.com/css?family=Roboto" rel="stylesheet" type="text/css" />
    <style>
body{margin:0;padding:0;color:#fff;background:#000}
body,td,th{font:95%/1.3 Roboto, Segoe UI, Tahoma, Arial, Helvetica, sans-serif}
td{padding:3px 30px 3px 0}
h1{padding:20px 20px 0 72px;color:white;font-weight:200;font-family:segoe ui;font-size:3em;margin:0;background:transparent url(https://a-sync.github.io/fnf-presets/fnf-logo.png) 3px 15px no-repeat;background-size:64px auto}
em{font-variant:italic;color:silver}
.before-list{padding:5px 20px 10px}
.mod-list{background:#222222;padding:20px}
.dlc-list{background:#222222;padding:20px}
.footer{padding:20px;color:gray}
.whups{color:gray}
a{color:#D18F21;text-decoration:underline}
a:hover{color:#F1AF41;text-decoration:none}
.from-steam{color:#449EBD}
.from-local{color:gray}
    </style>
  </head>
  <body>
    <h1>Arma 3 - Preset <strong>{{.Name}}</strong></h1>
    <p class="before-list">
      <em>Drag this file or link to it to Arma 3 Launcher or open it Mods / Preset / Import.</em>
    </p>
    <div class="mod-list">
      <table>
{{- range .Mods}}
        <tr data-type="ModContainer">
          <td data-type="DisplayName">{{.Name}}</td>
          <td>
            <span class="from-steam">Steam</span>
          </td>
          <td>
            <a {{.Href}} data-type="Link">{{.Link}}</a>
          </td>
        </tr>
{{- end}}
      </table>
    </div>
    <div class="dlc-list">
      <table>
{{- range .DLC}}
        <tr data-type="DlcContainer">
          <td data-type="DisplayName">{{.Name}}</td>
          <td>
            <a {{.Href}} data-type="Link">{{.Link}}</a>
          </td>
        </tr>
{{- end}}
      </table>
    </div>
    <div class="footer">
      <span>Created by <a href="https://a-sync.github.io/fnf-presets">https://a-sync.github.io/fnf-presets</a></span>
    </div>
  </body>
</html>
`

var tpl = template.Must(template.New("preset").Parse(presetTemplate))

type document struct {
	Name string
	Mods []row
	DLC  []row
}

// row carries the href attribute pre-escaped, so the href keeps the link
// byte for byte instead of the URL-normalised form.
type row struct {
	Name string
	Link string
	Href template.HTMLAttr
}

func rows(ms []preset.ModEntry) []row {
	rs := make([]row, len(ms))
	for i, m := range ms {
		rs[i] = row{
			Name: m.Name,
			Link: m.Link,
			Href: template.HTMLAttr(`href="` + html.EscapeString(m.Link) + `"`),
		}
	}
	return rs
}

// EffectiveMods returns the required mods followed by the optional mods
// present in sel, each group in preset order.
func EffectiveMods(p *preset.Preset, sel selection.Set) []preset.ModEntry {
	mods := make([]preset.ModEntry, 0, len(p.Mods.Required)+sel.Len())
	mods = append(mods, p.Mods.Required...)
	for _, m := range p.Mods.Optional {
		if sel.Has(m.Link) {
			mods = append(mods, m)
		}
	}
	return mods
}

// Write renders p with the optional mods selected in sel.
func Write(w io.Writer, p *preset.Preset, sel selection.Set) error {
	if p == nil {
		return ErrNilPreset
	}
	if _, err := io.WriteString(w, Prolog); err != nil {
		return err
	}
	return tpl.Execute(w, document{
		Name: p.DisplayName,
		Mods: rows(EffectiveMods(p, sel)),
		DLC:  rows(p.Mods.DLC),
	})
}

// Generate is Write into a string.
func Generate(p *preset.Preset, sel selection.Set) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p, sel); err != nil {
		return "", err
	}
	return buf.String(), nil
}
