package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// PreviewLimit максимальная длина превью содержимого в карточке (в символах)
const PreviewLimit = 200

// ErrEmptyTitle возвращается, если заголовок пуст после TrimSpace
var ErrEmptyTitle = errors.New("title cannot be empty")

// Note представляет заметку (строка таблицы notes)
type Note struct {
	ID        string    `json:"id" yaml:"id"`                 // Идентификатор, назначается удаленным хранилищем
	Title     string    `json:"title" yaml:"title"`           // Заголовок, обязателен
	Content   *string   `json:"content" yaml:"content"`       // Содержимое, nil если пустое
	CreatedAt time.Time `json:"created_at" yaml:"created_at"` // Дата создания, назначается хранилищем
	IsPublic  bool      `json:"is_public" yaml:"is_public"`   // Видимость заметки
}

// Validate проверяет валидность заметки
func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// IsEmpty проверяет, пуста ли заметка
func (n Note) IsEmpty() bool {
	return n.ID == "" && n.Title == "" && n.Content == nil
}

// ContentText возвращает содержимое или пустую строку
func (n Note) ContentText() string {
	if n.Content == nil {
		return ""
	}
	return *n.Content
}

// Preview возвращает содержимое, обрезанное до limit символов с многоточием
func (n Note) Preview(limit int) string {
	text := n.ContentText()
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// Clone возвращает глубокую копию заметки
func (n Note) Clone() Note {
	if n.Content != nil {
		c := *n.Content
		n.Content = &c
	}
	return n
}

// Equal сравнивает заметки по всем полям
func (n Note) Equal(other Note) bool {
	return n.ID == other.ID &&
		n.Title == other.Title &&
		n.ContentText() == other.ContentText() &&
		(n.Content == nil) == (other.Content == nil) &&
		n.CreatedAt.Equal(other.CreatedAt) &&
		n.IsPublic == other.IsPublic
}

// NormalizeTitle обрезает пробелы в заголовке
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// NormalizeContent обрезает пробелы; пустое содержимое хранится как отсутствующее
func NormalizeContent(content string) *string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SortNewestFirst сортирует заметки по created_at по убыванию
func SortNewestFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}
