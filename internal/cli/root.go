package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hevedar/appsketch/internal/config"
	"github.com/hevedar/appsketch/internal/emoji"
	"github.com/hevedar/appsketch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "appsketch",
		Short: "Sketch app screens in plain text",
		Long: `Appsketch parses sketch files that describe app screens, components,
and navigation flows, and turns them into linted reports, rendered
previews, and screen-flow diagrams.

A sketch file declares screens with labels, inputs, buttons, and images
grouped in vertical or horizontal stacks, plus navigation constructs and
screen-to-screen links. Malformed lines never abort parsing; they are
collected as diagnostics with line numbers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			// Set emoji state for all components
			emoji.SetEmojiDisabled(noEmoji)

			// Logging stays silent unless APPSKETCH_LOG_LEVEL is set
			return logging.InitializeFromEnv()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, html, svg)")

	// Add subcommands
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newGraphCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("appsketch %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

// GetGlobalConfig returns the effective configuration, loading it on
// first use. Load failures fall back to defaults so commands keep
// working without a config file.
func GetGlobalConfig() *config.Config {
	if globalConfig != nil {
		return globalConfig
	}

	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		}
		cfg = config.DefaultConfig()
	}

	globalConfig = cfg
	return globalConfig
}
