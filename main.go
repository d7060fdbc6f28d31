package main

import (
	"os"
	"os/signal"
	"syscall"

	"fixora/backend"
	"fixora/config"
	"fixora/services/account"
	"fixora/services/auth"
	"fixora/services/flow"
	"fixora/services/requests"
	"fixora/services/search"
	"fixora/storage"
	"fixora/utils"

	"go.uber.org/zap"
)

// App is the composition root: every service the UI shell talks to,
// wired over one backend client and one draft store.
type App struct {
	Store   storage.DraftStore
	Auth    *auth.DefaultAuthService
	Flow    *flow.DefaultBookingFlow
	Search  *search.DefaultSearchService
	Tracker *requests.DefaultTracker
	Account *account.DefaultAccountService

	close func()
}

// newDraftStore picks the draft store from STORAGE_BACKEND. Redis and
// SQLite each fall back a level when they cannot be opened, so the app
// always comes up with at least a session-scoped store.
func newDraftStore() (storage.DraftStore, func()) {
	logger := utils.GetLogger()

	switch config.AppConfig.StorageBackend {
	case "redis":
		redisStore, err := storage.NewRedisStore("")
		if err == nil {
			return redisStore, func() { redisStore.Close() }
		}
		logger.Warn("Redis draft store unavailable, falling back to sqlite", zap.Error(err))
		fallthrough
	case "sqlite", "":
		sqlStore, err := storage.NewSQLiteStore(config.AppConfig.StoragePath)
		if err == nil {
			return sqlStore, func() { sqlStore.Close() }
		}
		logger.Warn("Falling back to in-memory draft store", zap.Error(err))
	case "memory":
	default:
		logger.Sugar().Warnf("Unknown storage backend %q, using in-memory draft store", config.AppConfig.StorageBackend)
	}
	return storage.NewMemoryStore(), func() {}
}

func newApp() *App {
	store, closeStore := newDraftStore()

	authService := auth.NewAuthService(nil, store, config.AppConfig.ResendCooldownSeconds)
	// The auth session supplies the bearer token for every call.
	api := backend.NewClientFromConfig(authService.Session.Token)
	authService.API = api

	// Pick a persisted session back up so a restart does not sign the
	// user out. Stale tokens are discarded here.
	if authService.RestoreSession() {
		utils.GetLogger().Info("Restored persisted auth session")
	}

	return &App{
		Store:   store,
		Auth:    authService,
		Flow:    flow.NewBookingFlow(api, store, authService),
		Search:  &search.DefaultSearchService{API: api},
		Tracker: &requests.DefaultTracker{API: api, Store: store},
		Account: account.NewAccountService(api),
		close:   closeStore,
	}
}

// Close tears the app down: the active booking is reset and the store
// handle released.
func (a *App) Close() {
	a.Flow.Teardown(true)
	a.close()
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	app := newApp()
	defer app.Close()

	logger.Sugar().Infof("fixora client core ready (backend %s)", config.AppConfig.APIBaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Sugar().Info("fixora client core stopped")
}
