package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
	"github.com/pterm/pterm"

	"github.com/a-sync/fnf-presets/config"
	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

type ShowCommand struct {
	Config *config.Config

	Source   sourceFlags
	Optional bool
}

func (*ShowCommand) Name() string     { return "show" }
func (*ShowCommand) Synopsis() string { return "show mods of a preset" }
func (*ShowCommand) Usage() string {
	return `Usage: presets show [-optional] <identifier>

	Shows DLC and required mods of a preset. With -optional, shows
	optional mods and marks the selected ones.

Flags:
`
}

func (cmd *ShowCommand) SetFlags(fs *flag.FlagSet) {
	cmd.Source.setFlags(fs, cmd.Config)
	fs.BoolVar(&cmd.Optional, "optional", false, "show optional mods")
}

func (cmd *ShowCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		fs.Usage()
		return subcommands.ExitUsageError
	}
	id := fs.Arg(0)

	setupOutput()
	l := newLogger(cmd.Config)
	defer func() { _ = l.Sync() }()

	ps, _, ok := cmd.Source.catalog(ctx, cmd.Config, l)
	if !ok {
		return subcommands.ExitFailure
	}
	p, err := preset.Find(ps, id)
	if err != nil {
		log.Printf("find %q: %+v", id, err)
		return subcommands.ExitFailure
	}

	pterm.DefaultSection.Println(p.DisplayName)

	if !cmd.Optional {
		var data pterm.TableData
		for _, m := range p.Mods.DLC {
			data = append(data, []string{"DLC", modName(m), m.Link})
		}
		for _, m := range p.Mods.Required {
			data = append(data, []string{"Required", modName(m), m.Link})
		}
		return renderTable(data)
	}

	st, err := openStore(cmd.Config)
	if err != nil {
		log.Printf("open store: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeStore(st)

	sel, err := st.Get(p.Identifier)
	if err != nil {
		log.Printf("get selection %q: %+v", p.Identifier, err)
		return subcommands.ExitFailure
	}
	var data pterm.TableData
	for _, m := range p.Mods.Optional {
		data = append(data, []string{mark(sel, m.Link), modName(m), m.Link})
	}
	return renderTable(data)
}

// modName flags entries that require a store purchase.
func modName(m preset.ModEntry) string {
	if m.IsStoreDLC() {
		return fmt.Sprintf("%s (DLC)", m.Name)
	}
	return m.Name
}

func mark(sel selection.Set, link string) string {
	if sel.Has(link) {
		return "[x]"
	}
	return "[ ]"
}

func renderTable(data pterm.TableData) subcommands.ExitStatus {
	if len(data) == 0 {
		pterm.Info.Println("no mods")
		return subcommands.ExitSuccess
	}
	if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
		log.Printf("render table: %+v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
