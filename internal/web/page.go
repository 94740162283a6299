package web

import (
	"bytes"
	"errors"
	"net/http"

	"essential-notes/internal/converter"
	"essential-notes/internal/store"
)

// Сообщения для отказов, которые хранилище не записывает
const (
	messageBusy      = "Another operation is in progress."
	messageNotArmed  = "No note is pending deletion."
	messageUnhandled = "Something went wrong."
)

// form черновик формы; живет только в рамках запроса
type form struct {
	Title   string
	Content string
}

type pendingDelete struct {
	ID    string
	Title string
}

// page данные шаблона
type page struct {
	Notes   []converter.NoteCard
	Message string
	Busy    bool
	Loaded  bool

	Form     form
	EditID   string
	EditForm form

	Pending *pendingDelete
}

// render дополняет p снимком хранилища и отдает страницу
func (h *Handler) render(w http.ResponseWriter, status int, p page) {
	snap := h.store.Snapshot()

	p.Notes = converter.ModelsToCards(snap.Notes)
	p.Busy = snap.Busy
	p.Loaded = snap.Loaded
	if p.Message == "" {
		p.Message = snap.Message
	}
	if snap.Delete.Phase != store.DeleteIdle {
		p.Pending = &pendingDelete{ID: snap.Delete.Candidate}
		for _, n := range snap.Notes {
			if n.ID == snap.Delete.Candidate {
				p.Pending.Title = n.Title
				break
			}
		}
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, p); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// fail перерисовывает страницу после отказа, сохраняя введенные данные в p
func (h *Handler) fail(w http.ResponseWriter, err error, p page) {
	status := statusFor(err)
	switch {
	case errors.Is(err, store.ErrBusy):
		p.Message = messageBusy
	case errors.Is(err, store.ErrNotArmed):
		p.Message = messageNotArmed
	case status == http.StatusInternalServerError:
		p.Message = messageUnhandled
	}

	h.logger.Debug("request rejected", "status", status, "error", err)
	h.render(w, status, p)
}

func statusFor(err error) int {
	var opErr *store.OpError
	switch {
	case errors.Is(err, store.ErrEmptyTitle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrBusy), errors.Is(err, store.ErrNotArmed):
		return http.StatusConflict
	case errors.Is(err, store.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.As(err, &opErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
