package sqlrepo

import (
	"strconv"
	"strings"
)

// dialect различия SQL между поддерживаемыми драйверами
type dialect struct {
	name string
	// driverName имя драйвера database/sql
	driverName string
	// numbered плейсхолдеры вида $1 вместо ?
	numbered bool
	// clientIdentity id и created_at назначаются на стороне клиента
	clientIdentity bool
	// schema DDL таблицы, пустая строка - таблица управляется снаружи
	schema string
}

var sqliteDialect = dialect{
	name:           "sqlite",
	driverName:     "sqlite",
	clientIdentity: true,
	schema: `CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL CHECK (length(trim(title)) > 0),
		content TEXT,
		created_at TEXT NOT NULL,
		is_public INTEGER NOT NULL DEFAULT 0
	)`,
}

var postgresDialect = dialect{
	name:       "postgres",
	driverName: "pgx",
	numbered:   true,
}

// placeholder возвращает плейсхолдер для n-го аргумента (с единицы)
func (d dialect) placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// quoteIdent экранирует идентификатор двойными кавычками
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
