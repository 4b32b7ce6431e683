package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/merwanroudane/plott/domain/table"
	"github.com/merwanroudane/plott/internal"
	"github.com/merwanroudane/plott/internal/config"
	"github.com/merwanroudane/plott/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the single-page visualization application.
type App struct {
	router    *chi.Mux
	cfg       *config.Config
	log       *internal.Logger
	templates *template.Template
	ledger    ports.UploadLedger // nil when no database is configured
	guide     template.HTML

	// vizSem serializes visualization requests: one full
	// classify/expand/figure pass runs per interaction.
	vizSem *semaphore.Weighted

	mu      sync.RWMutex
	current *sessionDataset
}

// sessionDataset is the in-memory dataset the page currently works with.
// It is replaced wholesale on each upload and never persisted.
type sessionDataset struct {
	Name           string
	Dataset        table.Dataset
	Classification table.Classification
	LoadedAt       time.Time
}

// NewApp creates the UI application. ledger may be nil.
func NewApp(cfg *config.Config, ledger ports.UploadLedger) (*App, error) {
	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		cfg:       cfg,
		log:       internal.DefaultLogger,
		templates: templates,
		ledger:    ledger,
		guide:     renderGuide(),
		vizSem:    semaphore.NewWeighted(1),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static assets missing: %v", err))
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/example.xlsx", a.handleExampleDownload)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/api/datasets/upload", a.handleUpload)
	a.router.Post("/api/datasets/example", a.handleExample)
	a.router.Post("/api/figure", a.handleFigure)
	a.router.Get("/api/uploads", a.handleUploads)
}

// Handler exposes the router for the HTTP server and tests.
func (a *App) Handler() http.Handler { return a.router }

func (a *App) setCurrent(name string, ds table.Dataset, cls table.Classification) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = &sessionDataset{
		Name:           name,
		Dataset:        ds,
		Classification: cls,
		LoadedAt:       time.Now(),
	}
}

func (a *App) getCurrent() *sessionDataset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// indexData feeds the single page template.
type indexData struct {
	Guide         template.HTML
	MaxFrames     int
	LedgerEnabled bool
}

func (a *App) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.log.Error("template %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
