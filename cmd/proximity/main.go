package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/dkriz/proximity/internal/config"
	"github.com/dkriz/proximity/internal/console"
	"github.com/dkriz/proximity/internal/field"
)

func main() {
	cfg := field.DefaultConfig()
	cfg.Markers = config.GetEnvInt("PROX_FIELD_MARKERS", cfg.Markers)
	cfg.Seed = int64(config.GetEnvInt("PROX_FIELD_SEED", int(cfg.Seed)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	world := field.New(cfg)
	go world.Run(ctx)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Warn("stdin is not a terminal; reading commands anyway")
	}

	c := console.New(world, os.Stdin, os.Stdout, console.Options{})
	if err := c.Run(); err != nil {
		log.Fatal("console error", "err", err)
	}
}
