package store

import (
	"errors"

	"essential-notes/internal/model"
)

// Сообщения, показываемые пользователю
const (
	MessageEmptyTitle = "Note title cannot be empty."
	MessageNotFound   = "Note not found."
)

var (
	// ErrEmptyTitle заголовок пуст после TrimSpace, удаленный вызов не выполнялся
	ErrEmptyTitle = model.ErrEmptyTitle
	// ErrBusy другая операция еще выполняется
	ErrBusy = errors.New("another operation is in progress")
	// ErrNotArmed подтверждение удаления без выбранного кандидата
	ErrNotArmed = errors.New("no note is pending deletion")
	// ErrNoteNotFound заметки нет в локальной коллекции
	ErrNoteNotFound = errors.New("note not found")
)

// Op операция над хранилищем
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpToggle Op = "toggle"
)

func (o Op) failurePrefix() string {
	switch o {
	case OpLoad:
		return "Error loading notes: "
	case OpCreate:
		return "Error saving note: "
	case OpUpdate:
		return "Error updating note: "
	case OpDelete:
		return "Error deleting note: "
	case OpToggle:
		return "Error changing visibility: "
	default:
		return "Error: "
	}
}

// OpError ошибка удаленного вызова. Error() возвращает сообщение для пользователя
// с текстом ошибки сервиса в конце.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return e.Op.failurePrefix() + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
