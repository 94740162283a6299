package postgrest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essential-notes/internal/model"
	"essential-notes/internal/repository"
)

const testKey = "anon-key"

// recorded запрос, полученный тестовым сервером
type recorded struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()
		rec.body = string(b)
		rec.query = map[string]string{}
		for k := range r.URL.Query() {
			rec.query[k] = r.URL.Query().Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestList_SelectsOrderedColumns(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[
		{"id":"b","title":"B","content":null,"created_at":"2024-05-02T10:00:00.5+00:00","is_public":true},
		{"id":"a","title":"A","content":"body","created_at":"2024-05-01T10:00:00+00:00","is_public":false}
	]`)

	notes, err := NewRepository(srv.URL+"/", testKey).List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/rest/v1/notes", rec.path)
	assert.Equal(t, "id,title,content,created_at,is_public", rec.query["select"])
	assert.Equal(t, "created_at.desc", rec.query["order"])
	assert.Equal(t, testKey, rec.header.Get("apikey"))
	assert.Equal(t, "Bearer "+testKey, rec.header.Get("Authorization"))

	require.Len(t, notes, 2)
	assert.Equal(t, "b", notes[0].ID)
	assert.Nil(t, notes[0].Content)
	assert.True(t, notes[0].IsPublic)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 500000000, time.UTC), notes[0].CreatedAt)
	assert.Equal(t, "body", notes[1].ContentText())
}

func TestCreate_SendsInsertPayload(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusCreated,
		`[{"id":"n1","title":"Title","content":null,"created_at":"2024-05-01T10:00:00+00:00","is_public":false}]`)

	note, err := NewRepository(srv.URL, testKey).Create(context.Background(), model.NewNoteInput(" Title ", "  "))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "return=representation", rec.header.Get("Prefer"))
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))

	var payload []map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.body), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, "Title", payload[0]["title"])
	assert.Contains(t, payload[0], "content")
	assert.Nil(t, payload[0]["content"])
	assert.Equal(t, false, payload[0]["is_public"])

	assert.Equal(t, "n1", note.ID)
}

func TestUpdate_FiltersByID(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK,
		`[{"id":"n1","title":"T","content":"c","created_at":"2024-05-01T10:00:00+00:00","is_public":true}]`)

	note, err := NewRepository(srv.URL, testKey).Update(context.Background(), "n1", model.VisibilityPatch(true))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "eq.n1", rec.query["id"])
	assert.JSONEq(t, `{"is_public":true}`, rec.body)
	assert.True(t, note.IsPublic)
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[]`)

	_, err := NewRepository(srv.URL, testKey).Update(context.Background(), "gone", model.EditPatch("T", nil))
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestDelete(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[{"id":"n1"}]`)

	err := NewRepository(srv.URL, testKey).Delete(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "eq.n1", rec.query["id"])

	empty, _ := newTestServer(t, http.StatusOK, `[]`)
	err = NewRepository(empty.URL, testKey).Delete(context.Background(), "n1")
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestServiceErrorIsDecoded(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized,
		`{"code":"PGRST301","message":"JWT expired","details":null,"hint":null}`)

	_, err := NewRepository(srv.URL, testKey).List(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "PGRST301", apiErr.Code)
	assert.Equal(t, "JWT expired", err.Error())
}

func TestServiceErrorPlainBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadGateway, `upstream down`)

	_, err := NewRepository(srv.URL, testKey).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "upstream down", err.Error())
}

func TestWithTable(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)

	_, err := NewRepository(srv.URL, testKey, WithTable("drafts")).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/drafts", rec.path)
}

func TestList_NumericIDs(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[
		{"id":9007199254740993,"title":"B","content":null,"created_at":"2024-05-02T10:00:00+00:00","is_public":false},
		{"id":1,"title":"A","content":null,"created_at":"2024-05-01T10:00:00+00:00","is_public":false}
	]`)

	notes, err := NewRepository(srv.URL, testKey).List(context.Background())
	require.NoError(t, err)

	require.Len(t, notes, 2)
	assert.Equal(t, "9007199254740993", notes[0].ID)
	assert.Equal(t, "1", notes[1].ID)
}

func TestUpdate_NumericIDFilter(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK,
		`[{"id":42,"title":"New","content":null,"created_at":"2024-05-01T10:00:00+00:00","is_public":true}]`)

	note, err := NewRepository(srv.URL, testKey).Update(context.Background(), "42", model.VisibilityPatch(true))
	require.NoError(t, err)

	assert.Equal(t, "eq.42", rec.query["id"])
	assert.Equal(t, "42", note.ID)
	assert.True(t, note.IsPublic)
}

func TestRowID_Decode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"uuid string", `"3f2c9a1e-0000-4000-8000-000000000001"`, "3f2c9a1e-0000-4000-8000-000000000001", false},
		{"int8 number", `17`, "17", false},
		{"null", `null`, "", true},
		{"object", `{"v":1}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id rowID
			err := id.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(id))
		})
	}
}
