package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is provided, it generates bindings dynamically from user config
// If registry is nil, it falls back to hard-coded defaults
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		return getDefaultKeybindings()
	}

	sections := []KeybindingSection{}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, "open_window", "Open window")
	addBinding(&windows, registry, "open_blocking", "Open blocking dialog")
	addBinding(&windows, registry, "close_window", "Close window")
	addBinding(&windows, registry, "close_all", "Close all")
	addBinding(&windows, registry, "destroy_window", "Destroy window")
	addBinding(&windows, registry, "minimize_window", "Minimize/restore")
	addBinding(&windows, registry, "maximize_window", "Maximize/restore")
	addBinding(&windows, registry, "rename_window", "Retitle window")
	if len(windows.Bindings) > 0 {
		sections = append(sections, windows)
	}

	focus := KeybindingSection{Title: "FOCUS"}
	addBinding(&focus, registry, "escape", "Close topmost")
	addBinding(&focus, registry, "next_focus", "Next control")
	addBinding(&focus, registry, "prev_focus", "Previous control")
	addBinding(&focus, registry, "activate", "Press control")
	if len(focus.Bindings) > 0 {
		sections = append(sections, focus)
	}

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, "toggle_animations", "Toggle animations")
	addBinding(&system, registry, "toggle_help", "Toggle help")
	addBinding(&system, registry, "quit", "Quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getDefaultKeybindings returns the hard-coded keybindings (used as fallback)
func getDefaultKeybindings() []KeybindingSection {
	sections := []KeybindingSection{
		{
			Title: "WINDOWS",
			Bindings: []Keybinding{
				{"n", "Open window"},
				{"b", "Open blocking dialog"},
				{"x", "Close window"},
				{"X", "Close all"},
				{"d", "Destroy window"},
				{"m", "Minimize/restore"},
				{"f", "Maximize/restore"},
				{"r", "Retitle window"},
			},
		},
		{
			Title: "FOCUS",
			Bindings: []Keybinding{
				{"esc", "Close topmost"},
				{"tab", "Next control"},
				{"shift+tab", "Previous control"},
				{"enter, space", "Press control"},
			},
		},
		{
			Title: "SYSTEM",
			Bindings: []Keybinding{
				{"a", "Toggle animations"},
				{"?", "Toggle help"},
				{"q, ctrl+c", "Quit"},
			},
		},
	}
	return append(sections, getStaticHelpSections()...)
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag title", "Move window"},
				{"Drag ◢", "Resize window"},
				{"Click mask", "Dismiss (if allowed)"},
				{"Click dock", "Restore minimized"},
			},
		},
	}
}
