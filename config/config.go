// Package config resolves session settings from defaults, a TOML file and
// VT_TETRIS_* environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/vt-tetris/constants"
)

// Device selects the terminal link
type Device string

const (
	DeviceStdio  Device = "stdio"
	DeviceTTY    Device = "tty"
	DeviceSerial Device = "serial"
	DeviceTCP    Device = "tcp"
	DeviceWS     Device = "ws"
)

// Valid reports whether d names a supported link
func (d Device) Valid() bool {
	switch d {
	case DeviceStdio, DeviceTTY, DeviceSerial, DeviceTCP, DeviceWS:
		return true
	}
	return false
}

// Listens reports whether d accepts network sessions
func (d Device) Listens() bool {
	return d == DeviceTCP || d == DeviceWS
}

// Duration is a time.Duration read from strings like "250ms"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds every tunable of a session
type Config struct {
	Device Device `toml:"device"`
	Path   string `toml:"path"`
	Baud   uint   `toml:"baud"`
	Listen string `toml:"listen"`

	Seed          uint32   `toml:"seed"`
	FallBase      Duration `toml:"fall_base"`
	FallFloor     Duration `toml:"fall_floor"`
	EscapeTimeout Duration `toml:"escape_timeout"`

	StripHighBit bool `toml:"strip_high_bit"`
	FoldCase     bool `toml:"fold_case"`
	Debug        bool `toml:"debug"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Device:        DeviceStdio,
		Baud:          9600,
		Listen:        "127.0.0.1:2323",
		Seed:          constants.DefaultSeed,
		FallBase:      Duration{constants.FallBase},
		FallFloor:     Duration{constants.FallFloor},
		EscapeTimeout: Duration{constants.EscapeTimeout},
		StripHighBit:  true,
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// Environment variable names
const (
	EnvDevice        = "VT_TETRIS_DEVICE"
	EnvPath          = "VT_TETRIS_PATH"
	EnvBaud          = "VT_TETRIS_BAUD"
	EnvListen        = "VT_TETRIS_LISTEN"
	EnvSeed          = "VT_TETRIS_SEED"
	EnvFallBase      = "VT_TETRIS_FALL_BASE"
	EnvFallFloor     = "VT_TETRIS_FALL_FLOOR"
	EnvEscapeTimeout = "VT_TETRIS_ESCAPE_TIMEOUT"
	EnvStripHighBit  = "VT_TETRIS_STRIP_HIGH_BIT"
	EnvFoldCase      = "VT_TETRIS_FOLD_CASE"
	EnvDebug         = "VT_TETRIS_DEBUG"
)

// ApplyEnv overrides fields from VT_TETRIS_* variables.
// Unparseable values are reported; unset ones are skipped.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDevice); v != "" {
		c.Device = Device(v)
	}
	if v := os.Getenv(EnvPath); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}

	if v := os.Getenv(EnvBaud); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvBaud, err)
		}
		c.Baud = uint(n)
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		c.Seed = uint32(n)
	}

	durations := []struct {
		name string
		dst  *Duration
	}{
		{EnvFallBase, &c.FallBase},
		{EnvFallFloor, &c.FallFloor},
		{EnvEscapeTimeout, &c.EscapeTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.name); v != "" {
			if err := d.dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("config: %s: %w", d.name, err)
			}
		}
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{EnvStripHighBit, &c.StripHighBit},
		{EnvFoldCase, &c.FoldCase},
		{EnvDebug, &c.Debug},
	}
	for _, f := range flags {
		if v := os.Getenv(f.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", f.name, err)
			}
			*f.dst = b
		}
	}
	return nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if !c.Device.Valid() {
		return fmt.Errorf("config: unknown device %q", c.Device)
	}
	if c.FallBase.Duration <= 0 || c.FallFloor.Duration <= 0 || c.EscapeTimeout.Duration <= 0 {
		return fmt.Errorf("config: durations must be positive")
	}
	if c.FallFloor.Duration > c.FallBase.Duration {
		return fmt.Errorf("config: fall_floor %v exceeds fall_base %v", c.FallFloor.Duration, c.FallBase.Duration)
	}
	switch {
	case c.Device == DeviceSerial && c.Path == "":
		return fmt.Errorf("config: serial device needs a path")
	case c.Device == DeviceSerial && c.Baud == 0:
		return fmt.Errorf("config: serial device needs a baud rate")
	case c.Device.Listens() && c.Listen == "":
		return fmt.Errorf("config: %s device needs a listen address", c.Device)
	}
	return nil
}
