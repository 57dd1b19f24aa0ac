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
	Register(&EnvCmd{})
}

// EnvCmd prints the resolved configuration as YAML.
type EnvCmd struct{}

func (c *EnvCmd) Name() string       { return "env" }
func (c *EnvCmd) Aliases() []string  { return nil }
func (c *EnvCmd) Synopsis() string   { return "Print the resolved configuration" }
func (c *EnvCmd) Usage() string      { return "tasksync env" }
func (c *EnvCmd) NeedsBackend() bool { return false }

func (c *EnvCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EnvCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	data, err := cfg.YAML()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	out.Write(data)
	return exitcode.Success
}
