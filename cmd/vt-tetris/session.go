package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/vt-tetris/config"
	"github.com/lixenwraith/vt-tetris/core"
	"github.com/lixenwraith/vt-tetris/engine"
	"github.com/lixenwraith/vt-tetris/input"
	"github.com/lixenwraith/vt-tetris/network"
	"github.com/lixenwraith/vt-tetris/render"
	"github.com/lixenwraith/vt-tetris/status"
	"github.com/lixenwraith/vt-tetris/terminal"
)

// run dispatches on the configured device
func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Device.Listens() {
		return serve(ctx, cfg)
	}
	_, err := playSession(ctx, cfg, openBackend(cfg))
	return err
}

func openBackend(cfg *config.Config) terminal.Backend {
	switch cfg.Device {
	case config.DeviceTTY:
		return terminal.NewTTY(cfg.Path)
	case config.DeviceSerial:
		return terminal.NewSerial(cfg.Path, cfg.Baud)
	default:
		return terminal.NewStdio()
	}
}

// playSession runs one game on b and releases it
func playSession(ctx context.Context, cfg *config.Config, b terminal.Backend) (*status.Registry, error) {
	port := terminal.NewPort(b, terminal.WithStripHighBit(cfg.StripHighBit))
	if err := port.Open(); err != nil {
		return nil, err
	}
	log.Printf("session %s: opened", port.Name())
	core.SetCrashTerminal(port)
	defer func() {
		core.SetCrashTerminal(nil)
		port.Close()
	}()

	reg := status.NewRegistry()
	r := render.New(port)
	game := engine.NewGame(r,
		engine.WithSeed(cfg.Seed),
		engine.WithFallTiming(cfg.FallBase.Duration, cfg.FallFloor.Duration),
		engine.WithStats(reg),
	)
	dec := input.NewDecoder(port,
		input.WithEscapeTimeout(cfg.EscapeTimeout.Duration),
		input.WithFoldCase(cfg.FoldCase),
	)

	err := engine.NewLoop(game, dec).Run(ctx)
	if rerr := r.Err(); rerr != nil {
		log.Printf("session %s: output lost: %v", port.Name(), rerr)
	}
	log.Printf("session %s: score=%d %s", port.Name(), game.Score().Points, reg)
	return reg, err
}

// serve plays one fresh game per accepted connection until ctx ends
func serve(ctx context.Context, cfg *config.Config) error {
	netCfg := network.DefaultConfig()
	netCfg.Address = cfg.Listen
	if cfg.Device == config.DeviceWS {
		netCfg.Kind = network.KindWebSocket
	}

	tr := network.NewTransport(netCfg)
	if err := tr.Start(); err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}
	defer tr.Stop()

	for {
		s, err := tr.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, network.ErrStopped) {
				return nil
			}
			return err
		}

		log.Printf("session %d: start %s", s.ID, s.Addr)
		if _, err := playSession(ctx, cfg, s.Backend); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("session %d: %v", s.ID, err)
		}
	}
}
