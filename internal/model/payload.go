package model

import "sort"

// Имена колонок таблицы notes
const (
	ColumnID        = "id"
	ColumnTitle     = "title"
	ColumnContent   = "content"
	ColumnCreatedAt = "created_at"
	ColumnIsPublic  = "is_public"
)

// Columns перечисляет колонки, запрашиваемые при выборке
var Columns = []string{ColumnID, ColumnTitle, ColumnContent, ColumnCreatedAt, ColumnIsPublic}

// NoteInput данные для вставки новой заметки
type NoteInput struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	IsPublic bool    `json:"is_public"`
}

// NewNoteInput собирает вставку из пользовательского ввода: заголовок и содержимое
// обрезаются, пустое содержимое становится null, заметка создается скрытой
func NewNoteInput(title, content string) NoteInput {
	return NoteInput{
		Title:    NormalizeTitle(title),
		Content:  NormalizeContent(content),
		IsPublic: false,
	}
}

// NotePatch подмножество колонок {title, content, is_public} для обновления.
// Значение nil у content означает запись null.
type NotePatch map[string]any

// EditPatch обновление заголовка и содержимого
func EditPatch(title string, content *string) NotePatch {
	p := NotePatch{ColumnTitle: title}
	if content == nil {
		p[ColumnContent] = nil
	} else {
		p[ColumnContent] = *content
	}
	return p
}

// VisibilityPatch обновление видимости
func VisibilityPatch(isPublic bool) NotePatch {
	return NotePatch{ColumnIsPublic: isPublic}
}

// Columns возвращает изменяемые колонки в детерминированном порядке
func (p NotePatch) Columns() []string {
	cols := make([]string, 0, len(p))
	for k := range p {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Apply применяет изменения к копии заметки
func (p NotePatch) Apply(n Note) Note {
	n = n.Clone()
	if v, ok := p[ColumnTitle].(string); ok {
		n.Title = v
	}
	if v, ok := p[ColumnContent]; ok {
		if s, isString := v.(string); isString {
			n.Content = &s
		} else {
			n.Content = nil
		}
	}
	if v, ok := p[ColumnIsPublic].(bool); ok {
		n.IsPublic = v
	}
	return n
}
