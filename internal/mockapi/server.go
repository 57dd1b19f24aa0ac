// Package mockapi serves an in-memory task collection that honours the
// same REST contract as the deployed backend. It backs local development
// (tasksync mockapi) and the HTTP-level tests.
package mockapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"tasksync/internal/service"
)

// Server is an in-memory task backend.
type Server struct {
	mu     sync.Mutex
	order  []string
	tasks  map[string]service.Task
	failAt []int // queued status codes returned instead of handling a request
	hits   map[string]int
	logger *log.Logger
	router *mux.Router
}

// New creates an empty backend. logger may be nil.
func New(logger *log.Logger) *Server {
	s := &Server{
		tasks:  make(map[string]service.Task),
		hits:   make(map[string]int),
		logger: logger,
	}

	r := mux.NewRouter()
	r.Use(s.countRequests)
	r.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", s.updateTask).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)
	s.router = r
	return s
}

// Handler returns the HTTP handler with CORS applied, as a browser-facing
// backend would be deployed.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// Seed inserts a task directly and returns its assigned ID.
func (s *Server) Seed(title string, completed bool) service.TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(title, completed)
}

// Tasks returns a snapshot of the collection in insertion order.
func (s *Server) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// FailNext makes the next request answer with status instead of being handled.
// Calls queue up.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAt = append(s.failAt, status)
}

// Hits returns how many requests were received for "METHOD /path-template".
func (s *Server) Hits(method, pathTemplate string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pathTemplate]
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tmpl := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if t, err := route.GetPathTemplate(); err == nil {
				tmpl = t
			}
		}

		s.mu.Lock()
		s.hits[r.Method+" "+tmpl]++
		status := 0
		if len(s.failAt) > 0 {
			status = s.failAt[0]
			s.failAt = s.failAt[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			s.logf("injected %d for %s %s", status, r.Method, r.URL.Path)
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks := s.snapshotLocked()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title *string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Title == nil || strings.TrimSpace(*body.Title) == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	id := s.insertLocked(*body.Title, false)
	task := s.tasks[id.String()]
	s.mu.Unlock()

	s.logf("created %s %q", id, task.Title)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Completed *bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Completed == nil {
		http.Error(w, "completed required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	task, ok := s.tasks[id]
	if ok {
		task.Completed = *body.Completed
		s.tasks[id] = task
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	s.logf("updated %s completed=%t", id, task.Completed)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	_, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	s.logf("deleted %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) insertLocked(title string, completed bool) service.TaskID {
	id := service.StringID(uuid.NewString())
	s.tasks[id.String()] = service.Task{ID: id, Title: title, Completed: completed}
	s.order = append(s.order, id.String())
	return id
}

func (s *Server) snapshotLocked() []service.Task {
	out := make([]service.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
