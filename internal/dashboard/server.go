package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"queuectl/internal/model"
	"queuectl/internal/store"
)

// Server is the read-only monitoring view. It consumes StatusSummary,
// Metrics and ListJobs and never mutates queue state.
type Server struct {
	store *store.Store
	log   *slog.Logger
	tmpl  *template.Template
}

func NewServer(st *store.Store) *Server {
	return &Server{
		store: st,
		log:   slog.Default().With("component", "dashboard"),
		tmpl:  template.Must(template.New("dashboard").Parse(pageTemplate)),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	return r
}

// ListenAndServe blocks serving the dashboard on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("dashboard listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

type pageData struct {
	Summary     map[string]int
	States      []string
	Metrics     map[string]int
	PendingJobs []model.Job
	DeadJobs    []model.Job
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := s.store.StatusSummary(ctx)
	if err != nil {
		s.fail(w, "status summary", err)
		return
	}
	metrics, err := s.store.Metrics(ctx)
	if err != nil {
		s.fail(w, "metrics", err)
		return
	}
	pending, err := s.store.ListJobs(ctx, model.StatePending)
	if err != nil {
		s.fail(w, "list pending", err)
		return
	}
	dead, err := s.store.ListDead(ctx)
	if err != nil {
		s.fail(w, "list dead", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, pageData{
		Summary:     summary,
		States:      model.States,
		Metrics:     metrics,
		PendingJobs: pending,
		DeadJobs:    dead,
	}); err != nil {
		s.log.Error("render dashboard", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.log.Error("dashboard query failed", "op", op, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>queuectl dashboard</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; margin: 40px; background: #f9f9f9; }
  .container { max-width: 1100px; margin: 0 auto; background: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 20px; }
  h1, h2 { border-bottom: 2px solid #eee; padding-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
  th { background: #f4f4f4; }
  code { background: #f4f4f4; padding: 1px 4px; border-radius: 3px; }
</style>
</head>
<body>
<div class="container">
  <h1>queuectl dashboard</h1>

  <h2>Job status</h2>
  <table>
    {{range .States}}<tr><th>{{.}}</th><td>{{index $.Summary .}}</td></tr>{{end}}
  </table>

  <h2>Execution metrics</h2>
  <table>
    {{range $key, $value := .Metrics}}<tr><th>{{$key}}</th><td>{{$value}}</td></tr>{{end}}
  </table>

  <h2>Pending jobs</h2>
  <table>
    <tr><th>ID</th><th>Command</th><th>Priority</th><th>Run at</th></tr>
    {{range .PendingJobs}}
    <tr><td>{{.ID}}</td><td><code>{{.Command}}</code></td><td>{{.Priority}}</td><td>{{.RunAt}}</td></tr>
    {{else}}
    <tr><td colspan="4">No pending jobs.</td></tr>
    {{end}}
  </table>

  <h2>Dead letter queue</h2>
  <table>
    <tr><th>ID</th><th>Command</th><th>Error</th><th>Attempts</th></tr>
    {{range .DeadJobs}}
    <tr><td>{{.ID}}</td><td><code>{{.Command}}</code></td><td><code>{{.Error}}</code></td><td>{{.Attempts}}</td></tr>
    {{else}}
    <tr><td colspan="4">DLQ is empty.</td></tr>
    {{end}}
  </table>
</div>
</body>
</html>
`
