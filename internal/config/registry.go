package config

import (
	"maps"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
)

// ActionDescriptions describes every bindable action.
var ActionDescriptions = map[string]string{
	"open_window":       "Open a window",
	"open_blocking":     "Open a scroll-blocking dialog",
	"close_window":      "Close topmost window",
	"close_all":         "Close all windows",
	"destroy_window":    "Destroy topmost window",
	"minimize_window":   "Minimize or restore topmost window",
	"maximize_window":   "Maximize or restore topmost window",
	"rename_window":     "Retitle topmost window",
	"escape":            "Close topmost window",
	"next_focus":        "Focus next control",
	"prev_focus":        "Focus previous control",
	"activate":          "Press focused control",
	"toggle_animations": "Toggle animations",
	"toggle_help":       "Toggle help",
	"quit":              "Quit",
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actionKeys map[string][]string
	keyAction  map[string]string
	normalizer *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg. When two actions claim the
// same key, earlier sections win, then actions in name order.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionKeys: make(map[string][]string),
		keyAction:  make(map[string]string),
		normalizer: NewKeyNormalizer(),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	for _, section := range cfg.Keybindings.Sections() {
		for _, action := range slices.Sorted(maps.Keys(section)) {
			for _, k := range section[action] {
				if ok, _ := r.normalizer.ValidateKey(k); !ok {
					continue
				}
				r.actionKeys[action] = append(r.actionKeys[action], k)
				for _, variant := range r.normalizer.NormalizeKey(k) {
					if _, taken := r.keyAction[variant]; !taken {
						r.keyAction[variant] = action
					}
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return slices.Clone(r.actionKeys[action])
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(k string) string {
	for _, variant := range r.normalizer.NormalizeKey(k) {
		if action, ok := r.keyAction[variant]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys of action joined for the help overlay.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actionKeys[action]
	if len(keys) == 0 {
		return ""
	}
	return strings.Join(keys, ", ")
}

// Binding returns a bubbles key binding for action.
func (r *KeybindRegistry) Binding(action string) key.Binding {
	keys := r.GetKeys(action)
	desc := ActionDescriptions[action]
	if desc == "" {
		desc = action
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// Actions returns every bound action sorted by name.
func (r *KeybindRegistry) Actions() []string {
	return slices.Sorted(maps.Keys(r.actionKeys))
}

// KeyNormalizer maps the spellings users write in config files onto the key
// strings the terminal reports.
type KeyNormalizer struct {
	aliases map[string]string
}

// NewKeyNormalizer returns a normalizer with the common aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{aliases: map[string]string{
		"return":   "enter",
		"escape":   "esc",
		"del":      "delete",
		"spacebar": "space",
		" ":        "space",
		"control":  "ctrl",
		"option":   "alt",
		"opt":      "alt",
		"meta":     "alt",
	}}
}

// NormalizeKey returns the key lowercased plus its aliased spellings. The
// original lowercased form is always first.
func (n *KeyNormalizer) NormalizeKey(k string) []string {
	if k == "" {
		return nil
	}
	// Single shifted characters ("X", "?") are case-sensitive.
	if len([]rune(k)) == 1 {
		return []string{k}
	}

	lower := strings.ToLower(strings.TrimSpace(k))
	out := []string{lower}

	parts := strings.Split(lower, "+")
	changed := false
	for i, p := range parts {
		if alias, ok := n.aliases[p]; ok {
			parts[i] = alias
			changed = true
		}
	}
	if changed {
		out = append(out, strings.Join(parts, "+"))
	}
	return out
}

// ValidateKey reports whether k can be bound; the string explains why not.
func (n *KeyNormalizer) ValidateKey(k string) (bool, string) {
	if strings.TrimSpace(k) == "" && k != " " {
		return false, "empty key"
	}
	for _, p := range strings.Split(k, "+") {
		if p == "" && k != "+" {
			return false, "empty key in combination " + k
		}
	}
	return true, ""
}
