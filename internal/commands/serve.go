package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
	"tasksync/internal/tasksync"
	"tasksync/internal/webui"
)

const (
	shutdownTimeout = 5 * time.Second

	// writeMargin is left after an operation's budget to write the response.
	writeMargin = 5 * time.Second
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd serves the task page in a browser.
type ServeCmd struct {
	listen string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the web UI" }
func (c *ServeCmd) Usage() string      { return "tasksync serve [--listen <addr>]" }
func (c *ServeCmd) NeedsBackend() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.listen
	if addr == "" {
		addr = cfg.Listen
	}

	logger := log.New(errOut, "", log.LstdFlags)
	list := tasksync.NewListView()
	client := newSyncClient(cfg, svc, list, errOut)
	ui := webui.NewServer(client, list, logger, webui.WithOpTimeout(cfg.CommandTimeout))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	srv := newWebServer(cfg, ui.Handler())
	if !cfg.Quiet {
		fmt.Fprintf(errOut, "serving tasks on http://%s\n", ln.Addr())
	}
	return serveUntilDone(ctx, srv, ln, errOut)
}

// newWebServer builds the UI server. The write deadline outlasts the
// per-operation timeout so a slow mutation still gets its redirect out.
func newWebServer(cfg *config.Config, h http.Handler) *http.Server {
	write := cfg.ResponseTimeout
	if cfg.CommandTimeout > 0 && write < cfg.CommandTimeout+writeMargin {
		write = cfg.CommandTimeout + writeMargin
	}
	return &http.Server{
		Handler:           h,
		ReadHeaderTimeout: cfg.RequestTimeout,
		WriteTimeout:      write,
	}
}

// serveUntilDone runs srv on ln until ctx is cancelled.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener, errOut io.Writer) int {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(errOut, "error: shutdown: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
