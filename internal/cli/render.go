package cli

import (
	"fmt"
	"os"

	"github.com/hevedar/appsketch/internal/config"
	"github.com/hevedar/appsketch/internal/layout"
	"github.com/hevedar/appsketch/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	renderFormat     string
	renderOutputFile string
	renderTitle      string
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a sketch file to an output format",
		Long: `Parse a sketch file and render the full document.

If no file is specified, reads from stdin. The text format prints a
styled screen tree to the terminal; html produces a self-contained
preview page; svg produces a screen-flow diagram.

Examples:
  appsketch render login.sketch
  appsketch render --format html --output-file preview.html login.sketch
  appsketch render -f json login.sketch | jq .summary`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runRender,
	}

	cmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format (text, json, markdown, html, svg)")
	cmd.Flags().StringVar(&renderOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().StringVar(&renderTitle, "title", "", "page title for html output")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	source, sourceName, err := readInput(args)
	if err != nil {
		return err
	}

	result := parseSource(source, sourceName)

	format := resolveFormat(cmd, renderFormat)
	renderer, err := buildRenderer(format, cmd)
	if err != nil {
		return err
	}

	output, err := renderer.Render(result)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	return handleOutputDestination(output, renderOutputFile)
}

// resolveFormat picks the output format: the command's --format flag
// wins, then the root --output flag, then the configured default.
func resolveFormat(cmd *cobra.Command, flagValue string) string {
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		return flagValue
	}
	if f := cmd.Flag("output"); f != nil && f.Changed {
		return getOutputFormat()
	}
	return GetGlobalConfig().Output.DefaultFormat
}

// buildRenderer constructs the renderer for a format, applying the
// configured html title and diagram node sizes.
func buildRenderer(format string, cmd *cobra.Command) (render.Renderer, error) {
	cfg := GetGlobalConfig()

	switch format {
	case "html":
		title := cfg.Render.HTMLTitle
		if f := cmd.Flags().Lookup("title"); f != nil && f.Changed {
			title = renderTitle
		}
		return render.NewHTML(title), nil
	case "svg":
		return render.NewSVG(graphLayoutOptions(cfg)), nil
	default:
		return render.New(format, shouldColorize())
	}
}

// graphLayoutOptions maps render config onto diagram layout options
func graphLayoutOptions(cfg *config.Config) *layout.Options {
	opts := layout.DefaultOptions()
	if cfg.Render.NodeWidth > 0 {
		opts.NodeWidth = cfg.Render.NodeWidth
	}
	if cfg.Render.NodeHeight > 0 {
		opts.NodeHeight = cfg.Render.NodeHeight
	}
	return opts
}

// shouldColorize decides terminal color usage from the --no-color flag,
// the configured color mode, and whether stdout is a terminal.
func shouldColorize() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
