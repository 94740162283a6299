package memory

import (
	"context"
	"sync"
	"time"

	"essential-notes/internal/model"
	"essential-notes/internal/repository"

	"github.com/google/uuid"
)

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
	now   func() time.Time
}

// NewRepository создает in-memory таблицу заметок на основе map
func NewRepository() repository.NoteRepository {
	return newRepo(time.Now)
}

// NewRepositoryWithClock создает in-memory таблицу с заданным источником времени
func NewRepositoryWithClock(now func() time.Time) repository.NoteRepository {
	return newRepo(now)
}

func newRepo(now func() time.Time) *repo {
	return &repo{
		notes: make(map[string]model.Note),
		now:   now,
	}
}

// List возвращает все заметки, новые первыми
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note.Clone())
	}
	model.SortNewestFirst(notes)

	return notes, nil
}

// Create вставляет заметку, назначая id и created_at
func (r *repo) Create(ctx context.Context, in model.NoteInput) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note := model.Note{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: r.now().UTC(),
		IsPublic:  in.IsPublic,
	}.Clone()

	r.notes[note.ID] = note

	return note.Clone(), nil
}

// Update применяет patch к существующей заметке
func (r *repo) Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}

	updated := patch.Apply(existing)
	r.notes[id] = updated

	return updated.Clone(), nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}

	delete(r.notes, id)

	return nil
}
