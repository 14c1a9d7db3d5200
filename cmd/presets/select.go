package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
	"github.com/pterm/pterm"

	"github.com/a-sync/fnf-presets/config"
	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

type SelectCommand struct {
	Config *config.Config

	Source sourceFlags
	Remove bool
	Clear  bool
	All    bool
}

func (*SelectCommand) Name() string     { return "select" }
func (*SelectCommand) Synopsis() string { return "select optional mods" }
func (*SelectCommand) Usage() string {
	return `Usage: presets select [-remove] [-clear] [-all] <identifier> [links]

	Adds optional mods to the persisted selection of a preset, or
	removes them with -remove. -clear drops the whole selection and
	-all selects every optional mod.

Flags:
`
}

func (cmd *SelectCommand) SetFlags(fs *flag.FlagSet) {
	cmd.Source.setFlags(fs, cmd.Config)
	fs.BoolVar(&cmd.Remove, "remove", false, "deselect the given links")
	fs.BoolVar(&cmd.Clear, "clear", false, "clear the selection")
	fs.BoolVar(&cmd.All, "all", false, "select every optional mod")
}

func (cmd *SelectCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if fs.NArg() < 1 {
		fs.Usage()
		return subcommands.ExitUsageError
	}
	id, links := fs.Arg(0), fs.Args()[1:]

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

	known := make(map[string]bool, len(p.Mods.Optional))
	for _, m := range p.Mods.Optional {
		known[m.Link] = true
	}
	for _, link := range links {
		if !known[link] {
			pterm.Warning.Printfln("%q is not an optional mod of %q", link, p.Identifier)
		}
	}

	st, err := openStore(cmd.Config)
	if err != nil {
		log.Printf("open store: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeStore(st)

	sel, err := selection.Update(st, p.Identifier, func(s selection.Set) {
		if cmd.Clear {
			for _, link := range s.Links() {
				s.Remove(link)
			}
		}
		if cmd.All {
			for link := range known {
				s.Add(link)
			}
		}
		for _, link := range links {
			s.Toggle(link, !cmd.Remove)
		}
	})
	if err != nil {
		log.Printf("update selection %q: %+v", p.Identifier, err)
		return subcommands.ExitFailure
	}
	pterm.Success.Printfln("%d/%d optional mods selected", countSelected(p, sel), len(p.Mods.Optional))
	return subcommands.ExitSuccess
}
