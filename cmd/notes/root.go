package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"essential-notes/internal/config"
	"essential-notes/internal/logger"
	"essential-notes/internal/model"
	"essential-notes/internal/repository/backend"
	"essential-notes/internal/store"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "config.yml"

// app общее состояние команд, заполняется в PersistentPreRunE
type app struct {
	configFile string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Essential Notes: short text notes in a hosted table",
		Long: `Essential Notes keeps short text notes in a remote "notes" table.
Run "notes serve" for the web page or use the subcommands directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(a.configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Logger == nil {
				cfg.Logger = &config.ConfigLogger{}
			}
			if a.verbose {
				cfg.Logger.Level = "debug"
			}

			a.cfg = cfg
			a.logger = logger.NewWithWriter(cfg.Logger, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", defaultConfigFile, "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newToggleCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// openStore открывает таблицу и загружает заметки. close освобождает соединение.
func (a *app) openStore(ctx context.Context) (*store.Store, func(), error) {
	repo, closeRepo, err := backend.Open(ctx, a.cfg.Remote)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", a.cfg.Remote.Driver, err)
	}
	closeFn := func() {
		if err := closeRepo(); err != nil {
			a.logger.Warn("close repository", "error", err)
		}
	}

	st := store.New(repo, store.WithLogger(a.logger))
	if err := st.Load(ctx); err != nil {
		closeFn()
		return nil, nil, failure(st, err)
	}

	return st, closeFn, nil
}

// checkTitle отклоняет пустой заголовок до обращения к таблице
func checkTitle(title string) error {
	if model.NormalizeTitle(title) == "" {
		return errors.New(store.MessageEmptyTitle)
	}
	return nil
}

// failure заменяет ошибку сообщением хранилища, если оно есть
func failure(st *store.Store, err error) error {
	if msg := st.Message(); msg != "" {
		return errors.New(msg)
	}
	return err
}
