package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/vt-tetris/config"
)

// options are the command-line overrides; only flags actually given are applied
type options struct {
	fs *flag.FlagSet

	configPath    string
	device        string
	path          string
	listen        string
	baud          uint
	seed          uint
	fallBase      time.Duration
	fallFloor     time.Duration
	escapeTimeout time.Duration
	stripHighBit  bool
	foldCase      bool
	debug         bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{fs: flag.NewFlagSet("vt-tetris", flag.ContinueOnError)}
	def := config.Default()
	fs := o.fs
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&o.device, "device", string(def.Device), "terminal link: stdio, tty, serial, tcp, ws")
	fs.StringVar(&o.path, "path", def.Path, "tty or serial device path")
	fs.StringVar(&o.listen, "listen", def.Listen, "listen address for tcp and ws")
	fs.UintVar(&o.baud, "baud", def.Baud, "serial baud rate")
	fs.UintVar(&o.seed, "seed", uint(def.Seed), "piece generator seed")
	fs.DurationVar(&o.fallBase, "fall-base", def.FallBase.Duration, "fall interval at level 0")
	fs.DurationVar(&o.fallFloor, "fall-floor", def.FallFloor.Duration, "shortest fall interval")
	fs.DurationVar(&o.escapeTimeout, "escape-timeout", def.EscapeTimeout.Duration, "wait for each escape sequence byte")
	fs.BoolVar(&o.stripHighBit, "strip-high-bit", def.StripHighBit, "clear bit 7 of received bytes")
	fs.BoolVar(&o.foldCase, "fold-case", def.FoldCase, "accept lowercase command letters")
	fs.BoolVar(&o.debug, "debug", def.Debug, "write logs/vt-tetris.log")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return o, nil
}

// apply copies explicitly set flags over cfg
func (o *options) apply(cfg *config.Config) {
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Device = config.Device(o.device)
		case "path":
			cfg.Path = o.path
		case "listen":
			cfg.Listen = o.listen
		case "baud":
			cfg.Baud = o.baud
		case "seed":
			cfg.Seed = uint32(o.seed)
		case "fall-base":
			cfg.FallBase.Duration = o.fallBase
		case "fall-floor":
			cfg.FallFloor.Duration = o.fallFloor
		case "escape-timeout":
			cfg.EscapeTimeout.Duration = o.escapeTimeout
		case "strip-high-bit":
			cfg.StripHighBit = o.stripHighBit
		case "fold-case":
			cfg.FoldCase = o.foldCase
		case "debug":
			cfg.Debug = o.debug
		}
	})
}

// resolveConfig layers defaults, file, environment and flags, then validates
func resolveConfig(args []string, stderr io.Writer) (*config.Config, error) {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
