package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/box-bench/internal/api"
	"github.com/DjordjeVuckovic/box-bench/internal/server"
	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/es"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/factory"
	"github.com/DjordjeVuckovic/box-bench/internal/storage/pg"
	"github.com/DjordjeVuckovic/box-bench/pkg/config/env"
	pkgserver "github.com/DjordjeVuckovic/box-bench/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/eval_api/.env"); err != nil {
		slog.Warn("Failed to load .env", "error", err)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health", pkgserver.NewOkHealthChecker())

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "box-bench evaluation API is running")
	})

	var routerOpts []api.EvalRouterOption
	if storerType := os.Getenv("STORAGE_TYPE"); storerType != "" {
		storer, err := newRunStorer(s, storage.Type(storerType))
		if err != nil {
			slog.Error("Failed to create run storer", "type", storerType, "error", err)
			os.Exit(1)
		}
		routerOpts = append(routerOpts, api.WithRunStorer(storer))
		slog.Info("Run storage enabled", "type", storerType)
	} else {
		slog.Info("Run storage disabled")
	}

	api.NewEvalRouter(s.Echo, routerOpts...).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}

func newRunStorer(s *server.Server, storerType storage.Type) (storage.RunStorer, error) {
	fCfg := factory.Config{Type: storerType}
	switch storerType {
	case storage.PG:
		fCfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
	case storage.ES:
		fCfg.Es = &es.ClientConfig{
			Addresses: strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}
	return factory.NewRunStorer(s.Context(), fCfg)
}
