package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/config"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/repository"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/repository/storage"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/service"
	"github.com/emmanouilmatsis/tic-tac-toe/transport/rest"
	"github.com/emmanouilmatsis/tic-tac-toe/transport/websocket"
)

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf)
}

// Run - wires storage, services and transports, and serves until ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var moveRepo repository.MoveRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		moveRepo = repository.NewMoveRepository(redisStorage.Connection, conf.Redis.MoveTTL)
		log.Info("Move cache enabled", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.Redis.MoveTTL)
	}

	moveService := service.NewMoveService(logger, moveRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, moveService))
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- rest.Start(ctx, conf.SocketPort, websocket.New(logger, moveService).Routes())
	}()

	// whichever server stops first takes the other one down with it
	select {
	case err := <-httpErrCh:
		cancel()
		return errors.Join(wrapServerErr("HTTP", err), wrapServerErr("WebSocket", <-wsErrCh))
	case err := <-wsErrCh:
		cancel()
		return errors.Join(wrapServerErr("HTTP", <-httpErrCh), wrapServerErr("WebSocket", err))
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return errors.Join(wrapServerErr("HTTP", <-httpErrCh), wrapServerErr("WebSocket", <-wsErrCh))
	}
}

func wrapServerErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s server error: %w", name, err)
}
