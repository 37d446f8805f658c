// Command st tracks a stock portfolio from an interactive menu.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/etnz/stocktracker/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("cannot load .env file: %v", err)
	}

	// the shell is the default command
	if flag.NArg() == 0 {
		flag.CommandLine.Parse([]string{"shell"})
	}
	os.Exit(int(commander.Execute(context.Background())))
}
