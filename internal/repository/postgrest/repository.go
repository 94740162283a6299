// Package postgrest реализует таблицу заметок поверх REST API Supabase (PostgREST).
package postgrest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"essential-notes/internal/model"
	"essential-notes/internal/repository"

	"github.com/goccy/go-json"
)

const restPath = "/rest/v1/"

var _ repository.NoteRepository = (*repo)(nil)

// rowID id строки. PostgREST отдает его строкой (uuid, text) или числом (int8),
// в модели хранится текстовая форма.
type rowID string

func (id *rowID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null" || raw == "":
		return errors.New("id is null")
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = rowID(s)
	default:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("id %s: not a string or number", raw)
		}
		*id = rowID(raw)
	}
	return nil
}

// row строка таблицы notes в формате ответа PostgREST
type row struct {
	ID        rowID   `json:"id"`
	Title     string  `json:"title"`
	Content   *string `json:"content"`
	CreatedAt string  `json:"created_at"`
	IsPublic  bool    `json:"is_public"`
}

func (r row) toModel() (model.Note, error) {
	createdAt, err := repository.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return model.Note{}, fmt.Errorf("note %s: %w", r.ID, err)
	}
	return model.Note{
		ID:        string(r.ID),
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: createdAt,
		IsPublic:  r.IsPublic,
	}, nil
}

type repo struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// Option настраивает клиента
type Option func(*options)

type options struct {
	table      string
	timeout    time.Duration
	httpClient *http.Client
}

// WithTable задает имя таблицы (по умолчанию notes)
func WithTable(table string) Option {
	return func(o *options) { o.table = table }
}

// WithTimeout ограничивает время одного запроса, 0 - без ограничения
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithHTTPClient подменяет http.Client (используется в тестах)
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewRepository создает клиента таблицы по адресу сервиса и ключу доступа
func NewRepository(baseURL, apiKey string, opts ...Option) repository.NoteRepository {
	o := options{table: "notes"}
	for _, opt := range opts {
		opt(&o)
	}

	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}

	return &repo{
		endpoint:   strings.TrimRight(baseURL, "/") + restPath + url.PathEscape(o.table),
		apiKey:     apiKey,
		httpClient: client,
	}
}

// List выполняет select с сортировкой по created_at по убыванию
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	q := url.Values{}
	q.Set("select", strings.Join(model.Columns, ","))
	q.Set("order", model.ColumnCreatedAt+".desc")

	var rows []row
	if err := r.do(ctx, http.MethodGet, q, nil, &rows); err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(rows))
	for _, rw := range rows {
		n, err := rw.toModel()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Create выполняет insert и возвращает созданную строку
func (r *repo) Create(ctx context.Context, in model.NoteInput) (model.Note, error) {
	q := url.Values{}
	q.Set("select", strings.Join(model.Columns, ","))

	var rows []row
	if err := r.do(ctx, http.MethodPost, q, []model.NoteInput{in}, &rows); err != nil {
		return model.Note{}, err
	}
	if len(rows) == 0 {
		return model.Note{}, fmt.Errorf("insert returned no rows")
	}
	return rows[0].toModel()
}

// Update выполняет update с фильтром по id и возвращает обновленную строку
func (r *repo) Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error) {
	q := idFilter(id)
	q.Set("select", strings.Join(model.Columns, ","))

	var rows []row
	if err := r.do(ctx, http.MethodPatch, q, patch, &rows); err != nil {
		return model.Note{}, err
	}
	if len(rows) == 0 {
		return model.Note{}, repository.ErrNoteNotFound
	}
	return rows[0].toModel()
}

// Delete удаляет строку по id; пустой ответ означает, что строки не было
func (r *repo) Delete(ctx context.Context, id string) error {
	q := idFilter(id)
	q.Set("select", model.ColumnID)

	var rows []row
	if err := r.do(ctx, http.MethodDelete, q, nil, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return repository.ErrNoteNotFound
	}
	return nil
}

func idFilter(id string) url.Values {
	q := url.Values{}
	q.Set(model.ColumnID, "eq."+id)
	return q
}

// do отправляет запрос к таблице и декодирует JSON-ответ в out
func (r *repo) do(ctx context.Context, method string, query url.Values, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.endpoint+"?"+query.Encode(), body)
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}

	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
