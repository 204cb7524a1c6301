package libled

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DisplayConfig describes the LED matrix and the backend that shows it.
type DisplayConfig struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Panels     int    `json:"panels"`
	Brightness int    `json:"brightness"` // percent
	Backend    string `json:"backend"`    // window, terminal, hub75 or headless
}

// GraphicsConfig controls frame pacing and recording.
type GraphicsConfig struct {
	RecordRate int    `json:"recordRate"` // fps
	RecordDir  string `json:"recordDir"`  // empty disables recording
	FrameMs    int    `json:"frameMs"`
}

// GeneralConfig holds paths.
type GeneralConfig struct {
	DataPath string `json:"dataPath"`
}

// Config is the runtime configuration of a libled program.
type Config struct {
	Display  DisplayConfig  `json:"display"`
	Graphics GraphicsConfig `json:"graphics"`
	General  GeneralConfig  `json:"general"`
	Debug    bool           `json:"debug"`
}

// DefaultConfig returns the configuration of two chained 64x32 panels shown
// in a window.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      128,
			Height:     32,
			Panels:     2,
			Brightness: 100,
			Backend:    "window",
		},
		Graphics: GraphicsConfig{
			RecordRate: 30,
			FrameMs:    25,
		},
		General: GeneralConfig{DataPath: "."},
	}
}

// LoadConfig reads a JSON configuration over the defaults. A missing file
// yields the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		debugf("config %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("load config %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("LIBLED_DEBUG"); ok {
		if on, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Debug = on
		}
	}
	if v := strings.TrimSpace(os.Getenv("LIBLED_BACKEND")); v != "" {
		c.Display.Backend = strings.ToLower(v)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	case c.Display.Panels <= 0:
		return fmt.Errorf("invalid panel count %d", c.Display.Panels)
	case c.Display.Brightness < 0 || c.Display.Brightness > 100:
		return fmt.Errorf("brightness %d out of range 0-100", c.Display.Brightness)
	case c.Graphics.RecordRate <= 0:
		return fmt.Errorf("invalid record rate %d", c.Graphics.RecordRate)
	case c.Graphics.FrameMs <= 0:
		return fmt.Errorf("invalid frame interval %d ms", c.Graphics.FrameMs)
	}
	return nil
}
