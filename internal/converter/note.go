package converter

import (
	"time"

	"essential-notes/internal/model"
)

// DateLayout формат даты создания в карточке
const DateLayout = "2006-01-02"

// NoteCard представление заметки для отрисовки (HTML, CLI, JSON)
type NoteCard struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content,omitempty" yaml:"content,omitempty"`
	Preview   string    `json:"preview,omitempty" yaml:"preview,omitempty"`
	HasBody   bool      `json:"-" yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Created   string    `json:"created" yaml:"created"`
	IsPublic  bool      `json:"is_public" yaml:"is_public"`
	Public    string    `json:"public" yaml:"public"`
}

// ModelToCard конвертирует domain модель в карточку
func ModelToCard(note model.Note) NoteCard {
	return NoteCard{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.ContentText(),
		Preview:   note.Preview(model.PreviewLimit),
		HasBody:   note.ContentText() != "",
		CreatedAt: note.CreatedAt,
		Created:   formatDate(note.CreatedAt),
		IsPublic:  note.IsPublic,
		Public:    YesNo(note.IsPublic),
	}
}

// ModelsToCards конвертирует слайс domain моделей в карточки, сохраняя порядок
func ModelsToCards(notes []model.Note) []NoteCard {
	if notes == nil {
		return nil
	}

	cards := make([]NoteCard, len(notes))
	for i, note := range notes {
		cards[i] = ModelToCard(note)
	}

	return cards
}

// YesNo подпись для флага видимости
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}
