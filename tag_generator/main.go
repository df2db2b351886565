package main

import (
	"context"
	"fmt"
	stdio "io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"MS-Sequence-Tags/tag_generator/alphabet"
	"MS-Sequence-Tags/tag_generator/config"
	"MS-Sequence-Tags/tag_generator/io"
	"MS-Sequence-Tags/tag_generator/tagger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	alphabetPath string
	outputPath   string
	outputFormat string
	logLevel     string
	logFormat    string
	workers      int
	depth        int
)

var rootCmd = &cobra.Command{
	Use:           "tag_generator",
	Short:         "De novo sequence tags from MS/MS spectra",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run <spectra.mgf>",
	Short: "Generate sequence tags for every spectrum in an MGF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTags,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (defaults are used when empty)")
	runCmd.Flags().StringVarP(&alphabetPath, "alphabet", "a", "", "YAML residue alphabet (20 standard residues when empty)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "Output file, - for stdout")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "tsv", "Output format: tsv or json")
	runCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent spectra (overrides config)")
	runCmd.Flags().IntVarP(&depth, "depth", "d", 0, "Tag length (overrides config)")

	rootCmd.AddCommand(runCmd)
}

func newLogger(w stdio.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(logFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("run_id", uuid.NewString())
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if depth != 0 {
		cfg.Depth = depth
	}
	return cfg, cfg.Validate()
}

func loadAlphabet() (*alphabet.Alphabet, error) {
	if alphabetPath == "" {
		return alphabet.Standard(), nil
	}
	return alphabet.Load(alphabetPath)
}

func runTags(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	format := strings.ToLower(outputFormat)
	if format != "tsv" && format != "json" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	residues, err := loadAlphabet()
	if err != nil {
		return err
	}
	gen, err := tagger.New(residues, cfg, tagger.WithLogger(logger))
	if err != nil {
		return err
	}

	spectra, err := io.ReadMGF(args[0])
	if err != nil {
		return err
	}
	eff := gen.Config()
	codes := make([]string, 0, residues.Len())
	for _, r := range residues.Residues() {
		codes = append(codes, r.Code)
	}
	logger.Info("spectra loaded", "file", args[0], "count", len(spectra), "residues", strings.Join(codes, ""))
	logger.Debug("effective config",
		"tolerance", eff.Tolerance.Value, "unit", eff.Tolerance.Unit,
		"depth", eff.Depth, "max_edges", eff.MaxEdgesPerNode,
		"max_tag_results", eff.MaxTagResults, "workers", eff.Workers)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	results, err := gen.GenerateBatch(ctx, spectra)
	if err != nil {
		return err
	}

	reports := make([]io.Report, 0, len(results))
	tagCount, rejected := 0, 0
	for _, r := range results {
		rep := io.Report{Spectrum: r.Title, Truncated: r.Truncated, Tags: r.Tags}
		if r.Err != nil {
			rep.Error = r.Err.Error()
			rejected++
		}
		tagCount += len(r.Tags)
		reports = append(reports, rep)
	}
	logger.Info("tags generated",
		"spectra", len(results),
		"rejected", rejected,
		"tags", tagCount,
		"dur_ms", time.Since(startTime).Milliseconds())

	if outputPath == "-" {
		return writeReports(cmd.OutOrStdout(), format, reports, residues)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	return writeAndClose(f, format, reports, residues)
}

// writeAndClose writes the reports and closes wc, returning the first error of the two.
func writeAndClose(wc stdio.WriteCloser, format string, reports []io.Report, residues *alphabet.Alphabet) error {
	if err := writeReports(wc, format, reports, residues); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing report output: %w", err)
	}
	return nil
}

func writeReports(w stdio.Writer, format string, reports []io.Report, residues *alphabet.Alphabet) error {
	if format == "json" {
		return io.WriteJSON(w, reports, residues)
	}
	return io.WriteTSV(w, reports, residues)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
