package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/dkriz/proximity/internal/config"
	"github.com/dkriz/proximity/internal/console"
	"github.com/dkriz/proximity/internal/field"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/proximity_host_key"
)

// Shared marker field - all SSH sessions query the same world.
var (
	world       *field.Field
	cancelWorld context.CancelFunc
	worldOnce   sync.Once
)

func main() {
	host := config.GetEnv("PROX_SSH_HOST", defaultHost)
	port := config.GetEnv("PROX_SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("PROX_SSH_HOST_KEY", defaultHostKeyPath)

	worldOnce.Do(func() {
		var ctx context.Context
		ctx, cancelWorld = context.WithCancel(context.Background())
		world = field.New(fieldConfig())
		go world.Run(ctx)
		log.Info("marker field started", "markers", len(world.Snapshot().Markers))
	})

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			consoleMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY so prompt echo stays snappy
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down")
	cancelWorld()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// fieldConfig builds the field configuration from the environment.
func fieldConfig() field.Config {
	cfg := field.DefaultConfig()
	cfg.Width = config.GetEnvFloat("PROX_FIELD_WIDTH", cfg.Width)
	cfg.Height = config.GetEnvFloat("PROX_FIELD_HEIGHT", cfg.Height)
	cfg.Markers = config.GetEnvInt("PROX_FIELD_MARKERS", cfg.Markers)
	cfg.MaxSpeed = config.GetEnvFloat("PROX_FIELD_MAX_SPEED", cfg.MaxSpeed)
	cfg.Tick = config.GetEnvDuration("PROX_FIELD_TICK", cfg.Tick)
	cfg.Seed = int64(config.GetEnvInt("PROX_FIELD_SEED", int(cfg.Seed)))
	return cfg
}

// consoleMiddleware runs a query console for each SSH session.
func consoleMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		log.Info("session opened", "user", sess.User(), "remote", sess.RemoteAddr())

		c := console.New(world, sess, sess, console.Options{CRLF: true})
		if err := c.Run(); err != nil {
			log.Error("console error", "user", sess.User(), "err", err)
		}

		log.Info("session closed", "user", sess.User())
		next(sess)
	}
}
