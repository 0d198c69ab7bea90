package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/config"
	"github.com/matheus3301/chatwidget/internal/logging"
	"github.com/matheus3301/chatwidget/internal/notify"
	"github.com/matheus3301/chatwidget/internal/profile"
	"github.com/matheus3301/chatwidget/internal/roster"
	"github.com/matheus3301/chatwidget/internal/store"
	"github.com/matheus3301/chatwidget/internal/widget"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppName is shown as the desktop notification source.
const AppName = "Community Chat"

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	Profile    string
	ConfigPath string // optional override; empty = profile widget.toml
	LogPath    string // optional override for testing; empty = profile log
	Console    bool
}

func (p Params) configPath() string {
	if p.ConfigPath != "" {
		return p.ConfigPath
	}
	return profile.WidgetConfigPath(p.Profile)
}

func (p Params) logPath() string {
	if p.LogPath != "" {
		return p.LogPath
	}
	return profile.LogPath(p.Profile)
}

// Module returns the fx module that mounts a widget session, composing all
// providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Options(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: logger}
			l.UseLogLevel(zap.DebugLevel)
			return l
		}),
		fx.Module("widget",
			fx.Supply(p),
			fx.Provide(
				provideConfig,
				provideLogger,
				provideBus,
				provideRoster,
				provideStore,
				provideDesktop,
				provideNotifier,
				provideSession,
			),
			fx.Invoke(registerLifecycle),
		),
	)
}

func provideConfig(p Params) (*config.Widget, error) {
	cfg, _, err := config.LoadOrDefault(p.configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(p Params, cfg *config.Widget) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Path:    p.logPath(),
		Profile: p.Profile,
		Level:   level,
		Console: p.Console,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideRoster(cfg *config.Widget) (*roster.Roster, error) {
	return cfg.Roster()
}

func provideStore(cfg *config.Widget, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", config.BackendMemory:
		var opts []store.MemoryOption
		if cfg.Store.PairIndex {
			opts = append(opts, store.WithPairIndex())
		}
		logger.Info("store initialized", zap.String("backend", config.BackendMemory), zap.Bool("pair_index", cfg.Store.PairIndex))
		return store.NewMemory(opts...), nil
	case config.BackendSQLite:
		db, err := store.OpenMemory("chatwidget-" + uuid.NewString())
		if err != nil {
			return nil, err
		}
		result, err := db.Migrate()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if result.Changed {
			logger.Info("migrations applied", zap.Uint("version", result.Version))
		} else {
			logger.Info("migrations up to date", zap.Uint("version", result.Version))
		}
		logger.Info("store initialized", zap.String("backend", config.BackendSQLite), zap.String("db", db.Name()))
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func provideDesktop(logger *zap.Logger) *notify.Desktop {
	return notify.NewDesktop(AppName, logger)
}

func provideNotifier(cfg *config.Widget, b *bus.Bus, desktop *notify.Desktop, logger *zap.Logger) notify.Notifier {
	var fan notify.Fanout
	if cfg.Notifications.Toast {
		fan = append(fan, notify.NewToast(b))
	}
	if cfg.Notifications.Desktop {
		fan = append(fan, desktop)
	}
	if cfg.Notifications.Log {
		fan = append(fan, notify.NewLog(logger))
	}
	return fan
}

// provideSession seeds st and mounts the session. On failure st is closed
// here, since the app never starts and OnStop will not run.
func provideSession(cfg *config.Widget, r *roster.Roster, st store.Store, n notify.Notifier, b *bus.Bus, logger *zap.Logger) (_ *widget.Session, err error) {
	defer func() {
		if err != nil {
			if cerr := st.Close(); cerr != nil {
				logger.Warn("error closing store", zap.Error(cerr))
			}
		}
	}()

	seeded, err := widget.Seed(st, r, cfg.User, cfg.SeedMessages(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("seed messages: %w", err)
	}
	s, err := widget.New(widget.Deps{
		Identity:      cfg.User,
		Roster:        r,
		Store:         st,
		Notifier:      n,
		Bus:           b,
		Logger:        logger,
		ToastDuration: cfg.Notifications.Duration,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("widget mounted",
		zap.Int64("user_id", cfg.User.ID),
		zap.Int("contacts", r.Len()),
		zap.Int("seeded", seeded))
	return s, nil
}

func registerLifecycle(lc fx.Lifecycle, st store.Store, desktop *notify.Desktop, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			desktop.Wait()
			if err := st.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			logger.Info("widget unmounted")
			_ = logger.Sync()
			return nil
		},
	})
}

// Headless mounts a session, runs fn against it and unmounts.
func Headless(ctx context.Context, p Params, fn func(*widget.Session) error) error {
	var s *widget.Session
	fxApp := fx.New(Module(p), fx.Populate(&s))
	if err := fxApp.Err(); err != nil {
		return err
	}
	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	runErr := fn(s)
	if err := fxApp.Stop(ctx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
