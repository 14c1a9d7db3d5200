package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/subcommands"
	"github.com/pterm/pterm"

	"github.com/a-sync/fnf-presets/config"
	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

type ListCommand struct {
	Config *config.Config

	Source sourceFlags
}

func (*ListCommand) Name() string     { return "list" }
func (*ListCommand) Synopsis() string { return "list presets" }
func (*ListCommand) Usage() string {
	return `Usage: presets list [-base dir|url] [-manifest path] [-nocache]

	Lists every preset in the manifest with its mod counts and
	the number of selected optional mods.

Flags:
`
}

func (cmd *ListCommand) SetFlags(fs *flag.FlagSet) {
	cmd.Source.setFlags(fs, cmd.Config)
}

func (cmd *ListCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	setupOutput()
	l := newLogger(cmd.Config)
	defer func() { _ = l.Sync() }()

	ps, _, ok := cmd.Source.catalog(ctx, cmd.Config, l)
	if !ok {
		return subcommands.ExitFailure
	}

	st, err := openStore(cmd.Config)
	if err != nil {
		log.Printf("open store: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeStore(st)

	data := pterm.TableData{{"Name", "Required", "Optional", "Identifier"}}
	for i := range ps {
		p := &ps[i]
		sel, err := st.Get(p.Identifier)
		if err != nil {
			log.Printf("get selection %q: %+v", p.Identifier, err)
			return subcommands.ExitFailure
		}
		data = append(data, summaryRow(p.Summarize(countSelected(p, sel))))
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		log.Printf("render table: %+v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// countSelected counts selections that still match an optional mod.
func countSelected(p *preset.Preset, sel selection.Set) int {
	n := 0
	for _, m := range p.Mods.Optional {
		if sel.Has(m.Link) {
			n++
		}
	}
	return n
}

func summaryRow(s preset.Summary) []string {
	required := fmt.Sprint(s.Required)
	if len(s.DLC) > 0 {
		required += fmt.Sprintf(" + %s", strings.Join(s.DLC, ", "))
	}
	optional := fmt.Sprintf("%d/%d", s.OptionalSelected, s.OptionalTotal)
	return []string{s.Name, required, optional, s.Identifier}
}
