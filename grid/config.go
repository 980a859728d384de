package grid

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the file form of the grid's behaviour switches.
type Config struct {
	AutoScroll    AutoScrollConfig `toml:"auto_scroll"`
	DisableUpload bool             `toml:"disable_upload"`
	GhostSelect   bool             `toml:"ghost_select"`
	// Zoom is the initial cell zoom factor. Zero keeps the remembered zoom.
	Zoom       float32   `toml:"zoom"`
	ZoomLevels []float32 `toml:"zoom_levels,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		AutoScroll:  DefaultAutoScrollConfig,
		GhostSelect: true,
	}
}

// LoadConfig reads a TOML file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open grid config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig parses TOML from r on top of DefaultConfig and clamps the auto-scroll values.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode grid config: %w", err)
	}
	cfg.AutoScroll = cfg.AutoScroll.normalized()
	if cfg.Zoom < 0 {
		cfg.Zoom = 0
	}
	return cfg, nil
}

// EncodeConfig writes cfg as TOML.
func EncodeConfig(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode grid config: %w", err)
	}
	return nil
}

// ApplyConfig copies cfg onto opts.
func ApplyConfig[T comparable](opts *Options[T], cfg Config) {
	scroll := cfg.AutoScroll
	opts.AutoScroll = &scroll
	opts.DisableUpload = cfg.DisableUpload
	opts.DisableGhostSelect = !cfg.GhostSelect
	opts.Zoom = cfg.Zoom
	opts.ZoomLevels = cfg.ZoomLevels
}
