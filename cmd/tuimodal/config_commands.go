package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/tuimodal/internal/config"
)

// printConfigPath prints the config file path
func printConfigPath(w io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	_, err = fmt.Fprintln(w, path)
	return err
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// LoadUserConfig writes the defaults when the file is missing.
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// resetConfigToDefaults resets the configuration file to default settings.
// An existing file is only overwritten after confirmation, which needs an
// interactive stdin unless yes is set.
func resetConfigToDefaults(in *os.File, out io.Writer, yes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !yes {
		if !term.IsTerminal(int(in.Fd())) {
			return errors.New("refusing to overwrite config without a terminal; pass --yes")
		}
		fmt.Fprintf(out, "Warning: This will overwrite your existing configuration at:\n")
		fmt.Fprintf(out, "  %s\n\n", configPath)
		fmt.Fprintf(out, "Are you sure you want to reset to defaults? (yes/no): ")
		if !confirmed(in) {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteConfig(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration reset to defaults\n")
	fmt.Fprintf(out, "  Location: %s\n", configPath)
	fmt.Fprintln(out, "\nYou can customize it with: tuimodal config edit")
	return nil
}

func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	}
	return false
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings(w io.Writer) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		userConfig = config.DefaultConfig()
	}

	printKeybindingsTable(w, config.NewKeybindRegistry(userConfig))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// printKeybindingsTable prints one table per help section.
func printKeybindingsTable(w io.Writer, registry *config.KeybindRegistry) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("tuimodal Keybindings"))
	fmt.Fprintln(w)

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		fmt.Fprintln(w, newTable("Keys", "Action").Rows(rows...).Render())
		fmt.Fprintln(w)
	}
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings(w io.Writer) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	customizations := findCustomizations(userConfig, config.DefaultConfig())
	if len(customizations) == 0 {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'tuimodal keybinds list' to see all keybindings.")
		return nil
	}

	rows := make([][]string, 0, len(customizations))
	for _, c := range customizations {
		rows = append(rows, []string{c.Action, c.DefaultKeys, c.CustomKeys})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("Custom Keybindings"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, newTable("Action", "Default", "Custom").Rows(rows...).Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	fmt.Fprintln(w)
	return nil
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults, in
// section order and then by action name.
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var customizations []Customization

	userSections := userCfg.Keybindings.Sections()
	for i, defaultSection := range defaultCfg.Keybindings.Sections() {
		userSection := userSections[i]
		actions := make([]string, 0, len(defaultSection))
		for action := range defaultSection {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		for _, action := range actions {
			userKeys, exists := userSection[action]
			if !exists || slices.Equal(userKeys, defaultSection[action]) {
				continue
			}
			customizations = append(customizations, Customization{
				Action:      formatActionName(action),
				DefaultKeys: strings.Join(defaultSection[action], ", "),
				CustomKeys:  strings.Join(userKeys, ", "),
			})
		}
	}
	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}
