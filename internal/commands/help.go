package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasksync help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.Name(), cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  tasksync                                         List all tasks
  tasksync list [common flags] [--format <fmt>]    List tasks (text, json, yaml)
  tasksync add [common flags] <title...>
  tasksync create [common flags] <title...>
  tasksync toggle [common flags] [--id] <ref>      Flip the completed flag
  tasksync done [common flags] [--id] <ref>
  tasksync undo [common flags] [--id] <ref>
  tasksync rm [common flags] [--id] <ref>
  tasksync serve [common flags] [--listen <addr>]  Serve the web UI
  tasksync mockapi [common flags] [--listen <addr>] [--seed <title>]...
  tasksync env [common flags]                      Print the resolved configuration
  tasksync help
  tasksync version

A <ref> is the task number printed by list. With --id it is the server ID.

Common flags:
  --config <dir>     Override config directory
  --env <name>       Environment profile (production, staging, local)
  --base-url <url>   Override the API base URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
  --no-color         Disable strike-through for completed tasks
`
