package postgrest

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// APIError ошибка, возвращенная сервисом данных (формат PostgREST)
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// decodeError читает тело неуспешного ответа
func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("read error response: %w", err)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if len(body) > 0 && json.Unmarshal(body, apiErr) == nil && apiErr.Message != "" {
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
