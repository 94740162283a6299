// Package web отдает HTML страницу заметок, JSON снимок и поток событий хранилища.
// Страница целиком строится из снимка store.Store.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"essential-notes/internal/store"

	"github.com/gorilla/websocket"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler HTTP слой поверх хранилища
type Handler struct {
	store  *store.Store
	events *store.EventService
	logger *slog.Logger
	page   *template.Template

	upgrader websocket.Upgrader

	quit      chan struct{}
	closeOnce sync.Once
}

// NewHandler создает HTTP слой. events может быть nil, тогда /ws не получает событий.
func NewHandler(st *store.Store, events *store.EventService, logger *slog.Logger) (*Handler, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = store.NewEventService()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		store:  st,
		events: events,
		logger: logger,
		page:   page,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		quit: make(chan struct{}),
	}, nil
}

// Routes регистрирует маршруты
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /notes/{id}/edit", h.edit)
	mux.HandleFunc("POST /notes", h.create)
	mux.HandleFunc("POST /notes/{id}", h.update)
	mux.HandleFunc("POST /notes/{id}/visibility", h.toggle)
	mux.HandleFunc("POST /notes/{id}/delete", h.requestDelete)
	mux.HandleFunc("POST /delete/confirm", h.confirmDelete)
	mux.HandleFunc("POST /delete/cancel", h.cancelDelete)
	mux.HandleFunc("POST /reload", h.reload)

	mux.HandleFunc("GET /api/notes", h.snapshot)
	mux.HandleFunc("GET /ws", h.stream)
	mux.HandleFunc("GET /healthz", h.healthz)

	return mux
}

// Close завершает открытые WebSocket соединения
func (h *Handler) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
