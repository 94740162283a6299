package web

import (
	"context"
	"net/http"

	"essential-notes/internal/store"
)

// remoteCtx отвязывает удаленный вызов от отмены запроса: начатый вызов всегда завершается
func remoteCtx(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, page{})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	note, ok := h.store.Get(id)
	if !ok {
		h.render(w, http.StatusNotFound, page{Message: store.MessageNotFound})
		return
	}

	h.render(w, http.StatusOK, page{
		EditID:   id,
		EditForm: form{Title: note.Title, Content: note.ContentText()},
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in := form{Title: r.FormValue("title"), Content: r.FormValue("content")}

	if _, err := h.store.Create(remoteCtx(r), in.Title, in.Content); err != nil {
		h.fail(w, err, page{Form: in})
		return
	}
	redirectHome(w, r)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in := form{Title: r.FormValue("title"), Content: r.FormValue("content")}

	if _, err := h.store.Update(remoteCtx(r), id, in.Title, in.Content); err != nil {
		h.fail(w, err, page{EditID: id, EditForm: in})
		return
	}
	redirectHome(w, r)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.ToggleVisibility(remoteCtx(r), r.PathValue("id")); err != nil {
		h.fail(w, err, page{})
		return
	}
	redirectHome(w, r)
}

func (h *Handler) requestDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RequestDelete(r.PathValue("id")); err != nil {
		h.fail(w, err, page{})
		return
	}
	redirectHome(w, r)
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.ConfirmDelete(remoteCtx(r)); err != nil {
		h.fail(w, err, page{})
		return
	}
	redirectHome(w, r)
}

func (h *Handler) cancelDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.CancelDelete(); err != nil {
		h.fail(w, err, page{})
		return
	}
	redirectHome(w, r)
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(remoteCtx(r)); err != nil {
		h.fail(w, err, page{})
		return
	}
	redirectHome(w, r)
}
