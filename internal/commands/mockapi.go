package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/mockapi"
	"tasksync/internal/service"
)

func init() {
	Register(&MockAPICmd{})
}

// MockAPICmd runs an in-memory /tasks backend for local development.
type MockAPICmd struct {
	listen string
	seed   stringList
}

func (c *MockAPICmd) Name() string       { return "mockapi" }
func (c *MockAPICmd) Aliases() []string  { return nil }
func (c *MockAPICmd) Synopsis() string   { return "Run an in-memory task API" }
func (c *MockAPICmd) Usage() string      { return "tasksync mockapi [--listen <addr>] [--seed <title>]..." }
func (c *MockAPICmd) NeedsBackend() bool { return false }

func (c *MockAPICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
	c.seed = nil
	fs.Var(&c.seed, "seed", "")
}

func (c *MockAPICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.listen
	if addr == "" {
		addr = cfg.MockListen
	}

	var logger *log.Logger
	if cfg.Debug {
		logger = log.New(errOut, "mockapi: ", log.LstdFlags)
	}
	api := mockapi.New(logger)
	for _, title := range c.seed {
		api.Seed(title, false)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(errOut, "mock API listening on http://%s\n", ln.Addr())
	}

	srv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}
	return serveUntilDone(ctx, srv, ln, errOut)
}

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint([]string(*l)) }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}
