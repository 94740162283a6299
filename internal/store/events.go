package store

import (
	"sync"
	"time"

	"essential-notes/internal/model"
)

// EventType тип изменения состояния хранилища
type EventType string

const (
	EventLoaded     EventType = "loaded"
	EventLoadFailed EventType = "load_failed"
	EventCreated    EventType = "created"
	EventUpdated    EventType = "updated"
	EventDeleted    EventType = "deleted"
	EventFailed     EventType = "failed"
)

// Event изменение, опубликованное после завершения удаленного вызова
type Event struct {
	Type    EventType   `json:"type"`
	NoteID  string      `json:"note_id,omitempty"`
	Note    *model.Note `json:"note,omitempty"`
	Count   int         `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	At      time.Time   `json:"at"`
}

// EventService управляет подписчиками на события хранилища
type EventService struct {
	subscribers map[chan Event]bool
	mu          sync.RWMutex
}

// NewEventService создает новый экземпляр EventService
func NewEventService() *EventService {
	return &EventService{
		subscribers: make(map[chan Event]bool),
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения событий
func (s *EventService) Subscribe() chan Event {
	ch := make(chan Event, 10)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = true
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (s *EventService) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие пропускается.
func (s *EventService) Publish(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers возвращает число активных подписчиков
func (s *EventService) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
