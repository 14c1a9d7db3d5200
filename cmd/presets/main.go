package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/a-sync/fnf-presets/config"
)

const programName = "presets"

func init() {
	log.SetFlags(0)
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %+v", err)
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.Bool("h", false, "alias for help")
	fs.Bool("help", false, "print usage")

	cdr := subcommands.NewCommander(fs, programName)
	cdr.Register(&ListCommand{Config: cfg}, "")
	cdr.Register(&ShowCommand{Config: cfg}, "")
	cdr.Register(&SelectCommand{Config: cfg}, "")
	cdr.Register(&ExportCommand{Config: cfg}, "")
	cdr.Register(&DownloadCommand{Config: cfg}, "")
	cdr.Register(&BootstrapCommand{}, "manifest")
	cdr.Register(&FormatCommand{}, "manifest")
	cdr.Register(&CleanCommand{Config: cfg}, "")
	cdr.Register(cdr.HelpCommand(), "help")
	cdr.Register(cdr.FlagsCommand(), "help")
	cdr.Register(cdr.CommandsCommand(), "help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	switch cdr.Execute(ctx) {
	case subcommands.ExitFailure:
		os.Exit(1)
	case subcommands.ExitUsageError:
		os.Exit(2)
	}
}
