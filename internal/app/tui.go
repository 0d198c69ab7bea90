package app

import (
	"context"

	"github.com/matheus3301/chatwidget/internal/bus"
	"github.com/matheus3301/chatwidget/internal/tui"
	"github.com/matheus3301/chatwidget/internal/widget"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// TUIModule runs the terminal UI on top of Module and shuts the app down
// when the UI exits.
func TUIModule() fx.Option {
	return fx.Module("tui",
		fx.Provide(provideTUI),
		fx.Invoke(registerTUI),
	)
}

func provideTUI(p Params, s *widget.Session, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(s, b, logger, p.Profile)
}

func registerTUI(lc fx.Lifecycle, a *tui.App, sd fx.Shutdowner, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := a.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
					return
				}
				_ = sd.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			a.Stop()
			return nil
		},
	})
}
