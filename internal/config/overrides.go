package config

// Overrides are command-line settings that win over the config file.
type Overrides struct {
	ASCIIOnly    bool
	BorderStyle  string
	DockPosition string
	NoAnimations bool
	ThemeName    string
}

// ApplyOverrides sets the package globals from o and copies the non-empty
// overrides into cfg. cfg may be nil.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if o.ASCIIOnly {
		UseASCIIOnly = true
	}
	if o.NoAnimations {
		AnimationsEnabled = false
	}

	if cfg == nil {
		return
	}
	if o.BorderStyle != "" {
		cfg.Appearance.BorderStyle = o.BorderStyle
	}
	switch o.DockPosition {
	case "top", "bottom":
		cfg.Appearance.DockPosition = o.DockPosition
	}
	if o.ThemeName != "" {
		cfg.Appearance.Theme = o.ThemeName
	}
	if o.NoAnimations {
		cfg.Appearance.Animations = false
	}
}
