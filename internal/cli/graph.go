package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hevedar/appsketch/internal/layout"
	"github.com/hevedar/appsketch/internal/render"
	"github.com/spf13/cobra"
)

var (
	graphFormat     string
	graphOutputFile string
)

func newGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the screen-flow diagram",
		Long: `Parse a sketch file and render only its screen-flow graph.

Screens become nodes and links become edges, arranged left to right by
link distance from the navigation root. The svg format draws the
diagram; the json format emits the positioned nodes and edges for other
tools to consume.

Examples:
  appsketch graph login.sketch > flow.svg
  appsketch graph --format json login.sketch`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runGraph,
	}

	cmd.Flags().StringVarP(&graphFormat, "format", "f", "svg", "graph format (svg, json)")
	cmd.Flags().StringVar(&graphOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	source, sourceName, err := readInput(args)
	if err != nil {
		return err
	}

	result := parseSource(source, sourceName)
	cfg := GetGlobalConfig()

	var output []byte
	switch graphFormat {
	case "svg":
		renderer := render.NewSVG(graphLayoutOptions(cfg))
		output, err = renderer.Render(result)
		if err != nil {
			return fmt.Errorf("failed to render graph: %w", err)
		}
	case "json":
		graph := layout.Compute(result, graphLayoutOptions(cfg))
		output, err = json.MarshalIndent(graph, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal graph: %w", err)
		}
		output = append(output, '\n')
	default:
		return fmt.Errorf("unsupported graph format: %s (use svg or json)", graphFormat)
	}

	return handleOutputDestination(output, graphOutputFile)
}
