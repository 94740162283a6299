package repository

import (
	"fmt"
	"time"
)

// timestampLayouts форматы created_at, которые возвращают поддерживаемые хранилища
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp разбирает значение created_at, пришедшее из драйвера или JSON.
// Время без зоны считается UTC.
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case []byte:
		return ParseTimestamp(string(t))
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unsupported timestamp %q", t)
	case nil:
		return time.Time{}, fmt.Errorf("timestamp is null")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}
