package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hevedar/appsketch/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a sketch file with live preview",
		Long: `Open a terminal editor with a live parse preview.

The editor shows the sketch source next to the parsed screen tree and a
diagnostics panel. The preview re-parses shortly after you stop typing,
so an untouched buffer always shows the same result. Ctrl+S saves,
Ctrl+C quits.

If the file does not exist yet it is created on first save.

Examples:
  appsketch edit login.sketch
  appsketch edit`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runEdit,
	}

	cmd.Flags().String("theme", "default", "color theme (default, high-contrast, minimal)")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("edit requires an interactive terminal")
	}

	theme, _ := cmd.Flags().GetString("theme")
	if !ui.SetThemeByName(theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(ui.AvailableThemes(), ", "))
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	return ui.Run(path, GetGlobalConfig())
}
