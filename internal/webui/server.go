// Package webui serves the task page: a form to add tasks and the task list,
// each task with a checkbox and a delete button. All state comes from a
// tasksync.Client; the page is only ever a projection of its last reload.
package webui

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"tasksync/internal/service"
	"tasksync/internal/tasksync"
)

// Server is the web front end.
type Server struct {
	client    *tasksync.Client
	list      *tasksync.ListView
	logger    *log.Logger
	opTimeout time.Duration
	router    *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithOpTimeout bounds each operation (mutation plus reload).
func WithOpTimeout(d time.Duration) Option {
	return func(s *Server) { s.opTimeout = d }
}

// NewServer creates a Server. list must be the view client renders into.
func NewServer(client *tasksync.Client, list *tasksync.ListView, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		client: client,
		list:   list,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Match on the escaped path so an id containing "/" stays one segment.
	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.create).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/toggle", s.toggle).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/delete", s.remove).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the router wrapped with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(s.logger))(h)
	return handlers.CombinedLoggingHandler(s.logger.Writer(), h)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r.Context())
	defer cancel()

	_, err := s.client.Load(ctx)
	s.renderPage(w, "", err)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r.Context())
	defer cancel()

	title := r.PostFormValue("title")
	out, err := s.client.Create(ctx, title)
	if out.Skipped {
		// Nothing was sent; keep what the user typed.
		s.renderPage(w, title, nil)
		return
	}
	s.finishMutation(w, r, err)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r.Context())
	defer cancel()

	id, err := taskID(r)
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}
	completed, err := strconv.ParseBool(r.PostFormValue("completed"))
	if err != nil {
		http.Error(w, "invalid completed value", http.StatusBadRequest)
		return
	}
	_, err = s.client.Toggle(ctx, id, completed)
	s.finishMutation(w, r, err)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r.Context())
	defer cancel()

	id, err := taskID(r)
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}
	_, err = s.client.Delete(ctx, id)
	s.finishMutation(w, r, err)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// finishMutation sends the browser back to the list. A returned error only
// exists under the surface policy and is shown on the page instead.
func (s *Server) finishMutation(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		s.renderPage(w, "", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPage writes the page from the last successful reload. err is shown
// only when the client surfaces errors; otherwise it is logged.
func (s *Server) renderPage(w http.ResponseWriter, input string, err error) {
	page := Page{Entries: s.list.Entries(), Input: input}
	if err != nil {
		s.logger.Printf("warn: %v", err)
		if s.client.Policy() == tasksync.PolicySurface {
			page.Error = err.Error()
		}
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, page); err != nil {
		s.logger.Printf("error: render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// taskID decodes the {id} segment matched on the escaped path.
func taskID(r *http.Request) (service.TaskID, error) {
	raw, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		return service.TaskID{}, err
	}
	return service.StringID(raw), nil
}
