// Command sbk records stock trades and reports on positions and profits.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockbook/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("sbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// known reports whether name is a registered subcommand.
func known(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, command subcommands.Command) {
		if command.Name() == name {
			found = true
		}
	})
	return found
}
