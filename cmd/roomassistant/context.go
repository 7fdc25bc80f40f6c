package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"roomassistant/internal/auth"
	"roomassistant/internal/billing"
	"roomassistant/internal/catalog"
	"roomassistant/internal/config"
	"roomassistant/internal/gateway"
	"roomassistant/internal/genres"
	"roomassistant/internal/history"
	"roomassistant/internal/logging"
	"roomassistant/internal/notices"
	"roomassistant/internal/recommend"
	"roomassistant/internal/session"
)

// app bundles the wired components every command draws from.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	gw       *gateway.Client
	store    *session.Store
	notifier notices.Notifier
	catalog  *catalog.Service
	genres   *genres.Cache
	auth     *auth.Service
	billing  *billing.Service
}

type commandContext struct {
	configFlag *string

	appOnce sync.Once
	app     *app
	appErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureApp() (*app, error) {
	c.appOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.appErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.appErr = err
			return
		}

		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "roomassistant.log")},
		})
		if err != nil {
			c.appErr = err
			return
		}

		gw := gateway.NewClient(cfg.API.EndpointURL,
			gateway.WithLogger(logger),
			gateway.WithTimeout(time.Duration(cfg.API.RequestTimeout)*time.Second))
		store := session.NewStore(cfg.Paths.SessionPath, logger)
		notifier := notices.NewConsole(os.Stdout)

		c.app = &app{
			cfg:      cfg,
			logger:   logger,
			gw:       gw,
			store:    store,
			notifier: notifier,
			catalog:  catalog.NewService(gw, logger),
			genres:   genres.NewCache(gw),
			auth:     auth.NewService(gw, store, logger),
			billing:  billing.NewService(gw, store, notifier, logger),
		}
	})
	return c.app, c.appErr
}

func (c *commandContext) mustApp() *app {
	app, _ := c.ensureApp()
	return app
}

// requireSession loads the persisted session or fails with a sign-in hint.
func (a *app) requireSession() (session.Session, error) {
	sess, ok, err := a.store.Load()
	if err != nil {
		return session.Session{}, err
	}
	if !ok {
		return session.Session{}, errors.New("not signed in; run `roomassistant login` first")
	}
	return sess, nil
}

// withHistory opens the history store for the duration of fn. History is
// best effort; callers that cannot open it proceed without logging.
func (a *app) withHistory(fn func(*history.Store)) {
	store, err := history.Open(a.cfg.Paths.HistoryDB)
	if err != nil {
		a.logger.Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	fn(store)
}

// newRecommendHandoff wires the clipboard and browser integrations.
func (a *app) newRecommendHandoff() *recommend.Handoff {
	return recommend.NewHandoff(systemClipboard{}, systemBrowser{}, a.notifier, a.logger)
}
