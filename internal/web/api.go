package web

import (
	"net/http"
	"time"

	"essential-notes/internal/model"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

type deleteResponse struct {
	Phase     string `json:"phase"`
	Candidate string `json:"candidate,omitempty"`
}

type snapshotResponse struct {
	Notes   []model.Note   `json:"notes"`
	Message string         `json:"message,omitempty"`
	Busy    bool           `json:"busy"`
	Loaded  bool           `json:"loaded"`
	Delete  deleteResponse `json:"delete"`
}

// snapshot отдает текущее состояние хранилища в JSON
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	body, err := json.Marshal(snapshotResponse{
		Notes:   snap.Notes,
		Message: snap.Message,
		Busy:    snap.Busy,
		Loaded:  snap.Loaded,
		Delete: deleteResponse{
			Phase:     snap.Delete.Phase.String(),
			Candidate: snap.Delete.Candidate,
		},
	})
	if err != nil {
		h.logger.Error("encode snapshot", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// stream пересылает события хранилища в WebSocket до закрытия соединения
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	// Сбрасываем дедлайн чтения, унаследованный от http.Server
	_ = conn.SetReadDeadline(time.Time{})

	ch := h.events.Subscribe()
	defer h.events.Unsubscribe(ch)

	h.logger.Debug("websocket subscriber connected", "remote", r.RemoteAddr)

	// Входящие сообщения не нужны, чтение только ловит закрытие
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-h.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(wsWriteWait))
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("encode event", "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
