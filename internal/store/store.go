// Package store хранит локальную упорядоченную коллекцию заметок и синхронизирует ее
// с удаленной таблицей после каждого завершенного вызова.
package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"essential-notes/internal/model"
	"essential-notes/internal/repository"

	"golang.org/x/sync/semaphore"
)

// Snapshot неизменяемый срез состояния для отрисовки
type Snapshot struct {
	Notes   []model.Note
	Message string
	Busy    bool
	Loaded  bool
	Delete  DeleteState
}

// Store локальная коллекция заметок.
// Коллекция меняется только после успешного удаленного вызова; одновременно
// выполняется не более одного вызова.
type Store struct {
	repo   repository.NoteRepository
	events *EventService
	logger *slog.Logger
	now    func() time.Time

	// guard токен операции в полете
	guard *semaphore.Weighted

	mu      sync.RWMutex
	notes   []model.Note
	message string
	busy    bool
	loaded  bool
	del     DeleteState
}

// Option настраивает Store
type Option func(*Store)

// WithEvents публикует изменения в events
func WithEvents(events *EventService) Option {
	return func(s *Store) { s.events = events }
}

// WithLogger задает логгер
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New создает пустое хранилище поверх удаленной таблицы
func New(repo repository.NoteRepository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		guard:  semaphore.NewWeighted(1),
		logger: slog.Default(),
		now:    time.Now,
		notes:  []model.Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot возвращает копию текущего состояния
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]model.Note, len(s.notes))
	for i, n := range s.notes {
		notes[i] = n.Clone()
	}

	return Snapshot{
		Notes:   notes,
		Message: s.message,
		Busy:    s.busy,
		Loaded:  s.loaded,
		Delete:  s.del,
	}
}

// Notes возвращает копию коллекции
func (s *Store) Notes() []model.Note {
	return s.Snapshot().Notes
}

// Get возвращает заметку из локальной коллекции
func (s *Store) Get(id string) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return model.Note{}, false
}

// Message возвращает последнее сообщение об ошибке
func (s *Store) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

// Busy сообщает, выполняется ли удаленный вызов
func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// Load заменяет коллекцию списком из удаленной таблицы
func (s *Store) Load(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	notes, err := s.repo.List(ctx)
	if err != nil {
		s.publish(Event{Type: EventLoadFailed, Message: err.Error()})
		return s.fail(OpLoad, "", err)
	}

	fresh := make([]model.Note, len(notes))
	for i, n := range notes {
		fresh[i] = n.Clone()
	}

	s.mu.Lock()
	s.notes = fresh
	s.loaded = true
	if s.del.Phase == DeleteArmed && s.indexOf(s.del.Candidate) < 0 {
		s.del = DeleteState{}
	}
	s.mu.Unlock()

	s.logger.Debug("notes loaded", "count", len(fresh))
	s.publish(Event{Type: EventLoaded, Count: len(fresh)})
	return nil
}

// Create создает заметку и добавляет ее в начало коллекции
func (s *Store) Create(ctx context.Context, title, content string) (model.Note, error) {
	if err := s.acquire(); err != nil {
		return model.Note{}, err
	}
	defer s.release()

	in := model.NewNoteInput(title, content)
	if in.Title == "" {
		return model.Note{}, s.reject(ErrEmptyTitle, MessageEmptyTitle)
	}

	note, err := s.repo.Create(ctx, in)
	if err != nil {
		return model.Note{}, s.fail(OpCreate, "", err)
	}

	s.mu.Lock()
	s.notes = append([]model.Note{note.Clone()}, s.notes...)
	s.mu.Unlock()

	s.logger.Info("note created", "note_id", note.ID)
	s.publish(Event{Type: EventCreated, NoteID: note.ID, Note: ptr(note.Clone())})
	return note, nil
}

// Update меняет заголовок и содержимое, сохраняя позицию заметки
func (s *Store) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	if err := s.acquire(); err != nil {
		return model.Note{}, err
	}
	defer s.release()

	title = model.NormalizeTitle(title)
	if title == "" {
		return model.Note{}, s.reject(ErrEmptyTitle, MessageEmptyTitle)
	}
	if _, ok := s.Get(id); !ok {
		return model.Note{}, s.reject(ErrNoteNotFound, MessageNotFound)
	}

	note, err := s.repo.Update(ctx, id, model.EditPatch(title, model.NormalizeContent(content)))
	if err != nil {
		return model.Note{}, s.fail(OpUpdate, id, err)
	}

	s.replace(note)
	s.logger.Info("note updated", "note_id", id)
	s.publish(Event{Type: EventUpdated, NoteID: id, Note: ptr(note.Clone())})
	return note, nil
}

// ToggleVisibility отправляет отрицание текущего is_public
func (s *Store) ToggleVisibility(ctx context.Context, id string) (model.Note, error) {
	if err := s.acquire(); err != nil {
		return model.Note{}, err
	}
	defer s.release()

	current, ok := s.Get(id)
	if !ok {
		return model.Note{}, s.reject(ErrNoteNotFound, MessageNotFound)
	}

	note, err := s.repo.Update(ctx, id, model.VisibilityPatch(!current.IsPublic))
	if err != nil {
		return model.Note{}, s.fail(OpToggle, id, err)
	}

	s.replace(note)
	s.logger.Info("note visibility changed", "note_id", id, "is_public", note.IsPublic)
	s.publish(Event{Type: EventUpdated, NoteID: id, Note: ptr(note.Clone())})
	return note, nil
}

// RequestDelete выбирает кандидата на удаление (первый шаг)
func (s *Store) RequestDelete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}
	if s.indexOf(id) < 0 {
		s.message = MessageNotFound
		return ErrNoteNotFound
	}

	s.del = DeleteState{Phase: DeleteArmed, Candidate: id}
	return nil
}

// CancelDelete снимает выбор кандидата. Выполняющееся удаление отменить нельзя.
func (s *Store) CancelDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.del.Phase == DeleteExecuting {
		return ErrBusy
	}
	s.del = DeleteState{}
	return nil
}

// ConfirmDelete удаляет выбранного кандидата (второй шаг) и возвращает его id
func (s *Store) ConfirmDelete(ctx context.Context) (string, error) {
	s.mu.RLock()
	state := s.del
	s.mu.RUnlock()
	if state.Phase != DeleteArmed {
		return "", ErrNotArmed
	}

	if err := s.acquire(); err != nil {
		return "", err
	}
	defer s.release()

	s.mu.Lock()
	if s.del != state {
		s.mu.Unlock()
		return "", ErrNotArmed
	}
	s.del.Phase = DeleteExecuting
	s.mu.Unlock()

	id := state.Candidate
	err := s.repo.Delete(ctx, id)

	s.mu.Lock()
	s.del = DeleteState{}
	if err == nil {
		if i := s.indexOf(id); i >= 0 {
			s.notes = slices.Delete(slices.Clone(s.notes), i, i+1)
		}
	}
	s.mu.Unlock()

	if err != nil {
		return "", s.fail(OpDelete, id, err)
	}

	s.logger.Info("note deleted", "note_id", id)
	s.publish(Event{Type: EventDeleted, NoteID: id})
	return id, nil
}

// acquire берет токен операции и очищает предыдущее сообщение
func (s *Store) acquire() error {
	if !s.guard.TryAcquire(1) {
		return ErrBusy
	}
	s.mu.Lock()
	s.busy = true
	s.message = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	s.guard.Release(1)
}

// reject локальная ошибка без удаленного вызова
func (s *Store) reject(err error, message string) error {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	return err
}

// fail сохраняет сообщение об ошибке удаленного вызова; коллекция не меняется
func (s *Store) fail(op Op, id string, cause error) error {
	opErr := &OpError{Op: op, Err: cause}

	s.mu.Lock()
	s.message = opErr.Error()
	s.mu.Unlock()

	s.logger.Error("remote call failed", "op", string(op), "note_id", id, "error", cause)
	if op != OpLoad {
		s.publish(Event{Type: EventFailed, NoteID: id, Message: opErr.Error()})
	}
	return opErr
}

// replace подменяет запись с тем же id на месте
func (s *Store) replace(note model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(note.ID)
	if i < 0 {
		return
	}
	next := slices.Clone(s.notes)
	next[i] = note.Clone()
	s.notes = next
}

// indexOf вызывается под s.mu
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n model.Note) bool { return n.ID == id })
}

func (s *Store) publish(e Event) {
	if s.events == nil {
		return
	}
	e.At = s.now().UTC()
	s.events.Publish(e)
}

func ptr[T any](v T) *T { return &v }

// IsLocal сообщает, что ошибка произошла до удаленного вызова
func IsLocal(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrNotArmed) ||
		errors.Is(err, ErrNoteNotFound)
}
