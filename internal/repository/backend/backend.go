// Package backend выбирает реализацию таблицы заметок по конфигурации.
package backend

import (
	"context"
	"fmt"
	"time"

	"essential-notes/internal/config"
	"essential-notes/internal/repository"
	"essential-notes/internal/repository/memory"
	"essential-notes/internal/repository/postgrest"
	"essential-notes/internal/repository/sqlrepo"
)

// Open создает репозиторий для cfg.Driver. Возвращаемая функция освобождает ресурсы.
func Open(ctx context.Context, cfg *config.ConfigRemote) (repository.NoteRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverPostgREST, "":
		repo := postgrest.NewRepository(cfg.URL, cfg.AnonKey,
			postgrest.WithTable(cfg.Table),
			postgrest.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
		)
		return repo, noop, nil

	case config.DriverPostgres:
		repo, err := sqlrepo.OpenPostgres(ctx, cfg.DSN, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.DriverSQLite:
		repo, err := sqlrepo.OpenSQLite(ctx, cfg.Path, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.DriverMemory:
		return memory.NewRepository(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown remote driver %q", cfg.Driver)
	}
}
