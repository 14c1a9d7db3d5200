package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
	"github.com/pterm/pterm"

	"github.com/a-sync/fnf-presets/config"
)

type DownloadCommand struct {
	Config *config.Config

	Source sourceFlags
}

func (*DownloadCommand) Name() string     { return "download" }
func (*DownloadCommand) Synopsis() string { return "download documents to local cache" }
func (*DownloadCommand) Usage() string {
	return `Usage: presets download [-base dir|url] [-manifest path] [-nocache]

	Downloads every document named by the manifest to local cache.
	Useful for pre-filling local cache and checking document availability.

Flags:
`
}

func (cmd *DownloadCommand) SetFlags(fs *flag.FlagSet) {
	cmd.Source.setFlags(fs, cmd.Config)
}

func (cmd *DownloadCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	setupOutput()
	l := newLogger(cmd.Config)
	defer func() { _ = l.Sync() }()

	ps, rep, ok := cmd.Source.catalog(ctx, cmd.Config, l)
	if !ok {
		return subcommands.ExitFailure
	}

	data := pterm.TableData{
		{"Documents", fmt.Sprint(rep.Documents)},
		{"Succeeded", fmt.Sprint(rep.Succeeded)},
		{"Failed", fmt.Sprint(rep.Failed)},
		{"Presets", fmt.Sprint(len(ps))},
	}
	if len(rep.Gaps) > 0 {
		data = append(data, []string{"Gaps", fmt.Sprint(rep.Gaps)})
	}
	if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
		log.Printf("render table: %+v", err)
		return subcommands.ExitFailure
	}
	if rep.Failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
