package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/wizard"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Server struct {
	wizard  *wizard.Controller
	pages   map[string]*template.Template
	httpSrv *http.Server
	ln      net.Listener
	addr    string
	logger  *zap.Logger
}

var funcMap = template.FuncMap{
	"until": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
	"add": func(a, b int) int { return a + b },
	"truncate": func(s string, n int) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n]) + "…"
	},
}

func New(ctrl *wizard.Controller, logger *zap.Logger) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		wizard: ctrl,
		pages:  pages,
		logger: logger,
	}

	mux := http.NewServeMux()

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("getting static subfs: %w", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /category", s.handleSelectCategory)
	mux.HandleFunc("POST /answers", s.handleSubmitAnswers)
	mux.HandleFunc("GET /generating/status", s.handleGeneratingStatus)
	mux.HandleFunc("POST /regenerate", s.handleRegenerate)
	mux.HandleFunc("POST /edit", s.handleEditInputs)
	mux.HandleFunc("POST /back", s.handleBack)
	mux.HandleFunc("POST /start-over", s.handleStartOver)
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("POST /rate", s.handleRate)
	mux.HandleFunc("POST /theme", s.handleToggleTheme)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("POST /history/{id}/use", s.handleUseHistory)
	mux.HandleFunc("POST /history/{id}/delete", s.handleDeleteHistory)
	mux.HandleFunc("POST /history/clear", s.handleClearHistory)

	s.httpSrv = &http.Server{Handler: mux}
	return s, nil
}

// parsePages builds a template for each page by combining layout.html with
// the page template.
func parsePages() (map[string]*template.Template, error) {
	tmplFS, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("getting templates subfs: %w", err)
	}

	layoutBytes, err := fs.ReadFile(tmplFS, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}

	pageNames := []string{
		"category.html",
		"form.html",
		"display.html",
		"generating.html",
		"history.html",
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pageBytes, err := fs.ReadFile(tmplFS, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		tmpl, err := template.New("layout.html").Funcs(funcMap).Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", name, err)
		}

		if _, err := tmpl.New(name).Parse(string(pageBytes)); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		pages[name] = tmpl
	}
	return pages, nil
}

// Listen binds the server. Call Serve to start handling requests.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}
	s.ln = ln
	s.addr = ln.Addr().String()
	return nil
}

// Serve starts handling HTTP requests. Blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.httpSrv.Shutdown(context.Background())
	}()

	fmt.Printf("AI Prompt Generator running at http://%s\n", s.addr)
	fmt.Println("Press Ctrl+C to stop.")

	if err := s.httpSrv.Serve(s.ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}
	fmt.Println("\nShutting down...")
	return nil
}

func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		s.logger.Error("template not found", zap.String("name", name))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.logger.Error("render error", zap.String("name", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
