package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

func New(cfg config.Config, base *slog.Logger, users middleware.UserLookup, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(base))
	e.Use(echomw.BodyLimit("1M"))

	RegisterRoutes(e, cfg, users, h)
	return e
}

// Start は ctx が終わるまで待ち受け、その後リクエストを捌き切ってから止まる。
func Start(ctx context.Context, e *echo.Echo, addr string, l *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		l.Info("http_listen", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info("http_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
