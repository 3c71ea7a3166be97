package main

import (
	"context"
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	docc "github.com/swiftlang/swift-docc-sub006"
	"github.com/swiftlang/swift-docc-sub006/internal/diagnostics"
)

var (
	flagFormat  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "docc-graph",
	Short:         "Load and inspect compiler-emitted symbol graph bundles",
	Long:          "docc-graph decodes a directory of *.symbols.json files, unifies them per module, and reports what the documentation pipeline would see.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFormat != "json" && flagFormat != "text" {
			return fmt.Errorf("invalid format %q (expected json or text)", flagFormat)
		}
		level := zerolog.WarnLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loadCmd)
}

var flagWorkers int

var loadCmd = &cobra.Command{
	Use:   "load <dir>",
	Short: "Load every symbol graph under a directory and summarize the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().IntVar(&flagWorkers, "workers", 0, "decode workers for a single large graph (default: NumCPU)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	start := time.Now()

	paths, err := docc.DiscoverSymbolGraphs(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.symbols.json files under %s", args[0])
	}

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("decoding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	provider := func(path string) ([]byte, error) {
		defer bar.Add(1)
		return os.ReadFile(path)
	}

	engine := &diagnostics.Engine{}
	opts := []docc.LoaderOption{docc.WithDiagnostics(engine)}
	if flagWorkers > 0 {
		opts = append(opts, docc.WithDecodeWorkers(flagWorkers))
	}

	loader := docc.NewGraphLoader(provider, opts...)
	if _, err := loader.LoadAll(context.Background(), paths); err != nil {
		return err
	}

	summaries := loader.Query().Summaries()
	if flagFormat == "json" {
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(struct {
			Files   int                 `json:"files"`
			Modules []docc.ModuleSummary `json:"modules"`
		}{Files: len(paths), Modules: summaries}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		fmt.Printf("Loaded %d files in %s\n", len(paths), time.Since(start).Round(time.Millisecond))
		for _, s := range summaries {
			fmt.Printf("  %s: %d symbols, %d relationships", s.Module, s.Symbols, s.Relationships)
			if s.Orphans > 0 {
				fmt.Printf(" (%d orphaned)", s.Orphans)
			}
			fmt.Println()
			for _, p := range s.Platforms {
				fmt.Printf("    platform: %s\n", p)
			}
		}
	}

	for _, d := range engine.All() {
		log.Warn().
			Str("id", d.Identifier).
			Str("severity", d.Severity.String()).
			Msg(d.Summary)
	}
	return nil
}
