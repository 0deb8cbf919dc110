// Package main implements tuimodal, a terminal demo of stackable, draggable,
// resizable windows with masks, focus routing and scroll locking.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	themeName    string
	noAnimations bool
	asciiOnly    bool
	borderStyle  string
	dockPosition string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuimodal",
		Short: "Stackable terminal windows",
		Long: `tuimodal - stackable terminal windows

Open, drag, resize, minimize and maximize windows on top of a scrollable
background. Blocking dialogs mask everything below them and lock background
scrolling while they are shown.`,
		Example: `  # Run the demo
  tuimodal

  # Run without transitions, using ASCII borders
  tuimodal --no-animations --ascii

  # Serve the demo over SSH
  tuimodal ssh --port 2222

  # Edit configuration
  tuimodal config edit

  # List all keybindings
  tuimodal keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to the state directory")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable window transitions")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii", false, "Draw with ASCII characters only")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border: rounded, normal, thick, double, block, ascii, hidden")
	rootCmd.PersistentFlags().StringVar(&dockPosition, "dock-position", "", "Dock row: top or bottom")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve tuimodal over SSH",
		Long: `Serve tuimodal over SSH

Every connection gets its own window manager. The server generates a host
key automatically if none is given.`,
		Example: `  # Start SSH server on default port
  tuimodal ssh

  # Start on custom port
  tuimodal ssh --port 2222

  # Specify custom host key
  tuimodal ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuimodal configuration",
		Long:  `Manage the tuimodal configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath(cmd.OutOrStdout())
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuimodal configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running tuimodal picks up
saved changes without restarting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuimodal configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(os.Stdin, cmd.OutOrStdout(), resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings(cmd.OutOrStdout())
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	rootCmd.AddCommand(sshCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
