package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/emoji"
	"github.com/hevedar/appsketch/internal/inspect"
	"github.com/hevedar/appsketch/internal/logging"
	"github.com/spf13/cobra"
)

// maxSourceBytes caps how much input a single sketch document may
// contain. Sketch files are hand-written; anything near this size is
// garbage input, not a real document.
const maxSourceBytes = 10 << 20

var (
	checkSummary bool
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check a sketch file for problems",
		Long: `Parse a sketch file and report every diagnostic with its line number.

If no file is specified, reads from stdin. The exit code is 1 when any
problem is found, which makes check usable in CI and git hooks.

Examples:
  appsketch check login.sketch
  cat login.sketch | appsketch check
  appsketch check --summary login.sketch`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runCheck,
	}

	cmd.Flags().BoolVar(&checkSummary, "summary", false, "print document statistics after the diagnostics")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, sourceName, err := readInput(args)
	if err != nil {
		return err
	}

	result := parseSource(source, sourceName)

	printDiagnostics(result, sourceName)

	if checkSummary {
		printSummary(inspect.Summarize(result))
	}

	if result.HasDiagnostics() {
		return fmt.Errorf("%d problems found", len(result.Diagnostics))
	}
	return nil
}

// printDiagnostics writes the diagnostics listing to stdout
func printDiagnostics(result *dsl.ParseResult, sourceName string) {
	if !result.HasDiagnostics() {
		fmt.Printf("%s %s: no problems found\n", emoji.GetEmoji("success"), sourceName)
		return
	}

	fmt.Printf("%s %s:\n", emoji.GetEmoji("error"), sourceName)
	for _, d := range result.Diagnostics {
		fmt.Printf("  line %d: %s\n", d.LineNumber, d.Message)
	}
}

// printSummary writes document statistics to stdout
func printSummary(summary *inspect.Summary) {
	fmt.Printf("\n%s Document statistics:\n", emoji.GetEmoji("stats"))
	fmt.Printf("  Screens:    %d\n", summary.ScreenCount)
	fmt.Printf("  Containers: %d\n", summary.ContainerCount)
	fmt.Printf("  Components: %d\n", summary.ComponentCount)
	fmt.Printf("  Links:      %d\n", summary.LinkCount)
	fmt.Printf("  Max depth:  %d\n", summary.MaxDepth)
	if len(summary.Unreferenced) > 0 {
		fmt.Printf("  Unreferenced screens: %v\n", summary.Unreferenced)
	}
}

// readInput reads the sketch source from a file argument or stdin and
// returns the source text plus a display name for messages.
func readInput(args []string) (source, sourceName string, err error) {
	reader, sourceName, cleanup, err := setupInputReader(args)
	if err != nil {
		return "", "", err
	}
	if cleanup != nil {
		defer cleanup()
	}

	source, err = readSource(reader)
	if err != nil {
		return "", "", err
	}
	return source, sourceName, nil
}

// setupInputReader sets up the input reader based on command args
func setupInputReader(args []string) (reader io.Reader, sourceName string, cleanup func(), err error) {
	if len(args) == 0 {
		// Read from stdin
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Reading from stdin...\n")
		}
		return os.Stdin, "(stdin)", nil, nil
	}

	// Read from file
	filename := args[0]

	// Validate and sanitize file path for security
	if err := validateFilePath(filename); err != nil {
		return nil, "", nil, fmt.Errorf("invalid file path: %w", err)
	}

	// Clean the path to handle Windows path separators and trailing slashes
	cleanPath := filepath.Clean(filename)

	// #nosec G304 - path is validated above
	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}

	cleanup = func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
		}
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Reading file: %s\n", cleanPath)
	}

	return file, cleanPath, cleanup, nil
}

// readSource reads the whole document from the input reader
func readSource(reader io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSourceBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxSourceBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxSourceBytes)
	}
	return string(data), nil
}

// parseSource parses the document and logs the outcome
func parseSource(source, sourceName string) *dsl.ParseResult {
	start := time.Now()
	result := dsl.Parse(source)
	logging.LogParse(sourceName, len(result.Screens), len(result.Diagnostics), time.Since(start))

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Parsed %d lines: %d screens, %d diagnostics\n",
			result.LineCount, len(result.Screens), len(result.Diagnostics))
	}
	return result
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(output []byte, outputFile string) error {
	if outputFile != "" {
		if err := writeOutputBytesToFile(output, outputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Output saved to: %s\n", outputFile)
		}
	} else {
		fmt.Print(string(output))
	}

	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// Create or truncate the file
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	// Write the output
	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
