package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/a-sync/fnf-presets/config"
	"github.com/a-sync/fnf-presets/selection"
)

type CleanCommand struct {
	Config *config.Config

	Selections bool
}

func (*CleanCommand) Name() string     { return "clean" }
func (*CleanCommand) Synopsis() string { return "remove cached files" }
func (*CleanCommand) Usage() string {
	return `Usage: presets clean [-selections]

	Removes cached documents. With -selections, also removes the
	default selection store.

Flags:
`
}

func (cmd *CleanCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.Selections, "selections", false, "remove persisted selections")
}

func (cmd *CleanCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	path, err := cacheDir(programName)
	if err != nil {
		log.Printf("cache path: %+v", err)
		return subcommands.ExitFailure
	}
	if err := os.RemoveAll(path); err != nil {
		log.Printf("clean %q: %+v", path, err)
		return subcommands.ExitFailure
	}
	if !cmd.Selections {
		return subcommands.ExitSuccess
	}

	st, err := openStore(cmd.Config)
	if err != nil {
		log.Printf("open store: %+v", err)
		return subcommands.ExitFailure
	}
	if err := selection.Purge(st); err != nil {
		log.Printf("purge selections: %+v", err)
		closeStore(st)
		return subcommands.ExitFailure
	}
	closeStore(st)
	return subcommands.ExitSuccess
}
