// Package config loads the user configuration: appearance, window defaults
// and keybindings, stored as TOML under the XDG config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/tuimodal/internal/geometry"
	"github.com/Gaurav-Gosain/tuimodal/internal/manager"
)

// configRelPath is the config file location below the XDG config home.
const configRelPath = "tuimodal/config.toml"

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Windows     WindowDefaults    `toml:"windows"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig controls how windows are drawn.
type AppearanceConfig struct {
	Theme        string `toml:"theme"`
	BorderStyle  string `toml:"border_style"`
	DockPosition string `toml:"dock_position"`
	Animations   bool   `toml:"animations"`
}

// WindowDefaults are applied to every window the demo opens.
type WindowDefaults struct {
	Width           string `toml:"width"`
	Height          string `toml:"height"`
	Placement       string `toml:"placement"`
	AnimationMS     int    `toml:"animation_ms"`
	BaseZIndex      int    `toml:"base_z_index"`
	MinWidth        int    `toml:"min_width"`
	MinHeight       int    `toml:"min_height"`
	ResizeMode      string `toml:"resize_mode"`
	Draggable       bool   `toml:"draggable"`
	Resizable       bool   `toml:"resizable"`
	Minimizable     bool   `toml:"minimizable"`
	Maximizable     bool   `toml:"maximizable"`
	KeepInViewport  bool   `toml:"keep_in_viewport"`
	CloseOnEscape   bool   `toml:"close_on_escape"`
	DismissibleMask bool   `toml:"dismissible_mask"`
	DisplayMask     bool   `toml:"display_mask"`
}

// KeybindingsConfig maps actions to keys, grouped for the help overlay.
type KeybindingsConfig struct {
	Windows map[string][]string `toml:"windows"`
	Focus   map[string][]string `toml:"focus"`
	System  map[string][]string `toml:"system"`
}

// Sections returns the keybinding groups in display order.
func (k KeybindingsConfig) Sections() []map[string][]string {
	return []map[string][]string{k.Windows, k.Focus, k.System}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:        "tokyo_night",
			BorderStyle:  "rounded",
			DockPosition: "bottom",
			Animations:   true,
		},
		Windows: WindowDefaults{
			Width:           "50%",
			Height:          "40%",
			Placement:       string(geometry.PlaceCenter),
			AnimationMS:     int(DefaultAnimationDuration / time.Millisecond),
			BaseZIndex:      1000,
			MinWidth:        20,
			MinHeight:       6,
			ResizeMode:      "single",
			Draggable:       true,
			Resizable:       true,
			Minimizable:     true,
			Maximizable:     true,
			KeepInViewport:  true,
			CloseOnEscape:   true,
			DismissibleMask: false,
			DisplayMask:     true,
		},
		Keybindings: KeybindingsConfig{
			Windows: map[string][]string{
				"open_window":     {"n"},
				"open_blocking":   {"b"},
				"close_window":    {"x"},
				"close_all":       {"X"},
				"destroy_window":  {"d"},
				"minimize_window": {"m"},
				"maximize_window": {"f"},
				"rename_window":   {"r"},
			},
			Focus: map[string][]string{
				"escape":     {"esc"},
				"next_focus": {"tab"},
				"prev_focus": {"shift+tab"},
				"activate":   {"enter", "space"},
			},
			System: map[string][]string{
				"toggle_animations": {"a"},
				"toggle_help":       {"?"},
				"quit":              {"q", "ctrl+c"},
			},
		},
	}
}

// GetConfigPath returns the config file path, creating its directory.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the config file, writing the defaults first when it
// does not exist.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return LoadFrom(path)
}

// LoadFrom reads the config file at path. Missing sections and invalid
// values fall back to the defaults.
func LoadFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.validate()
	return cfg, nil
}

// WriteConfig writes cfg to path with a short header.
func WriteConfig(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuimodal configuration\n")
	sb.WriteString("# Keybindings map an action to one or more keys.\n")
	sb.WriteString("# Lengths accept cells (\"40\") or percentages (\"50%\").\n\n")
	sb.Write(data)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *UserConfig) validate() {
	def := DefaultConfig()

	if _, err := geometry.ResolveLength(c.Windows.Width, 100); err != nil || c.Windows.Width == "" {
		c.Windows.Width = def.Windows.Width
	}
	if _, err := geometry.ResolveLength(c.Windows.Height, 100); err != nil || c.Windows.Height == "" {
		c.Windows.Height = def.Windows.Height
	}
	c.Windows.Placement = string(geometry.ParsePlacement(c.Windows.Placement))
	if c.Windows.AnimationMS < 0 {
		c.Windows.AnimationMS = 0
	}
	if c.Windows.BaseZIndex <= 0 {
		c.Windows.BaseZIndex = def.Windows.BaseZIndex
	}
	c.Windows.MinWidth = max(c.Windows.MinWidth, 0)
	c.Windows.MinHeight = max(c.Windows.MinHeight, 0)

	switch c.Appearance.DockPosition {
	case "top", "bottom":
	default:
		c.Appearance.DockPosition = def.Appearance.DockPosition
	}

	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = make(map[string][]string)
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&c.Keybindings.Windows, def.Keybindings.Windows)
	fill(&c.Keybindings.Focus, def.Keybindings.Focus)
	fill(&c.Keybindings.System, def.Keybindings.System)
}

// WindowConfig turns the window defaults into a manager config.
func (c *UserConfig) WindowConfig() manager.Config {
	w := c.Windows
	cfg := manager.DefaultConfig()
	cfg.Width = w.Width
	cfg.Height = w.Height
	cfg.Position = manager.Position{Placement: geometry.ParsePlacement(w.Placement)}
	cfg.AnimationDuration = time.Duration(w.AnimationMS) * time.Millisecond
	cfg.BaseZIndex = w.BaseZIndex
	cfg.MinWidth = w.MinWidth
	cfg.MinHeight = w.MinHeight
	cfg.Draggable = w.Draggable
	cfg.Resizable = w.Resizable
	cfg.Minimizable = w.Minimizable
	cfg.Maximizable = w.Maximizable
	cfg.KeepInViewport = w.KeepInViewport
	cfg.CloseOnEscape = w.CloseOnEscape
	cfg.DismissibleMask = w.DismissibleMask
	cfg.DisplayMask = w.DisplayMask
	if strings.EqualFold(w.ResizeMode, "centered") {
		cfg.ResizeMode = manager.ResizeCentered
	}
	if !c.Appearance.Animations || !AnimationsEnabled {
		cfg.AnimationDuration = 0
	}
	return cfg
}
