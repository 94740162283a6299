package repository

import (
	"context"
	"errors"

	"essential-notes/internal/model"
)

// ErrNoteNotFound возвращается, когда строка с указанным id отсутствует в таблице
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository интерфейс удаленной таблицы notes.
// Порядок, идентификаторы и время создания определяет хранилище.
type NoteRepository interface {
	// List возвращает все заметки, отсортированные по created_at по убыванию
	List(ctx context.Context) ([]model.Note, error)

	// Create вставляет строку и возвращает созданную запись
	Create(ctx context.Context, in model.NoteInput) (model.Note, error)

	// Update применяет patch к строке с указанным id и возвращает обновленную запись
	Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error)

	// Delete удаляет строку по id
	Delete(ctx context.Context, id string) error
}
