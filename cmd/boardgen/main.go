// Command boardgen computes supplier board orders from production BOM
// data and writes the saw optimiser import file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DavidHearl/boardgen/internal/engine"
	"github.com/DavidHearl/boardgen/internal/export"
	"github.com/DavidHearl/boardgen/internal/importer"
	"github.com/DavidHearl/boardgen/internal/model"
	"github.com/DavidHearl/boardgen/internal/project"
	"github.com/DavidHearl/boardgen/internal/source"
)

// Version information (set at build time).
var Version = "0.1.0"

var (
	configPath string
	verbose    bool
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boardgen",
		Short: "boardgen - board order generation for the panel saw",
		Long: `boardgen reads bill-of-materials data for production jobs, classifies
parts by edge-banding pattern and computes the minimal supplier board
purchase per colour group. The result is written as a PNX import file
for the saw optimiser, with optional Excel, PDF and label outputs.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: ~/.boardgen/settings.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newSettingsCommand())

	return rootCmd
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the run logger. Verbose lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the settings file, falling back to defaults when
// none exists.
func loadSettings() (model.SawSettings, error) {
	path := configPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	settings, err := project.LoadSettings(path)
	if err != nil {
		return model.SawSettings{}, fmt.Errorf("load settings from %s: %w", path, err)
	}
	return settings, nil
}

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	Database string
	Jobs     string
	Out      string
	XLSX     string
	PDF      string
	Labels   string
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the board order file for a list of jobs",
		Long: `Read the BOM rows of the given jobs from the order database, compute
the board purchases per colour group and write the optimiser import
file.`,
		Example: `  # Single job
  boardgen generate --db orders.db --jobs 12345 --out order.pnx

  # Several jobs into one file, with a review spreadsheet
  boardgen generate --db orders.db --jobs "12345,12346" --out order.pnx --xlsx order.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "Path to the order database")
	cmd.Flags().StringVar(&opts.Jobs, "jobs", "", "Job numbers, comma or space separated")
	cmd.Flags().StringVar(&opts.Out, "out", "order.pnx", "Output path for the optimiser import file")
	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "Optional review spreadsheet path")
	cmd.Flags().StringVar(&opts.PDF, "pdf", "", "Optional PDF summary path")
	cmd.Flags().StringVar(&opts.Labels, "labels", "", "Optional QR label sheet path")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("jobs")

	return cmd
}

func runGenerate(opts *generateOptions) error {
	logger := newLogger()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	jobs, err := engine.ParseJobList(opts.Jobs)
	if err != nil {
		return err
	}

	src, err := source.Open(opts.Database, settings, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	eng := engine.New(settings, logger)
	result, err := eng.Run(context.Background(), src, jobs)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if err := export.WritePNXFile(opts.Out, result.Rows, settings); err != nil {
		return fmt.Errorf("write %s: %w", opts.Out, err)
	}
	fmt.Printf("Wrote %d order rows to %s\n", len(result.Rows), opts.Out)

	return writeExtras(result.Rows, settings, opts.XLSX, opts.PDF, opts.Labels)
}

// importOptions holds the flags of the import command.
type importOptions struct {
	File   string
	Out    string
	XLSX   string
	PDF    string
	Labels string
}

func newImportCommand() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Generate the board order file from a CSV or Excel BOM",
		Long: `Read BOM rows from a CSV or Excel file instead of the order database.
Column headers are matched case-insensitively; the delimiter is
auto-detected for CSV input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "Path to the BOM file (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.Out, "out", "order.pnx", "Output path for the optimiser import file")
	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "Optional review spreadsheet path")
	cmd.Flags().StringVar(&opts.PDF, "pdf", "", "Optional PDF summary path")
	cmd.Flags().StringVar(&opts.Labels, "labels", "", "Optional QR label sheet path")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(opts *importOptions) error {
	logger := newLogger()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var imported importer.ImportResult
	if strings.HasSuffix(strings.ToLower(opts.File), ".xlsx") {
		imported = importer.ImportExcel(opts.File)
	} else {
		imported = importer.ImportCSV(opts.File)
	}
	for _, w := range imported.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	for _, e := range imported.Errors {
		fmt.Fprintf(os.Stderr, "Error: %s\n", e)
	}
	if len(imported.Parts) == 0 {
		return fmt.Errorf("no usable rows in %s", opts.File)
	}

	mem := source.NewMemorySource(settings)
	mem.Add(imported.Parts...)

	jobs := mem.Jobs()
	sort.Ints(jobs)

	eng := engine.New(settings, logger)
	result, err := eng.Run(context.Background(), mem, jobs)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if err := export.WritePNXFile(opts.Out, result.Rows, settings); err != nil {
		return fmt.Errorf("write %s: %w", opts.Out, err)
	}
	fmt.Printf("Wrote %d order rows to %s\n", len(result.Rows), opts.Out)

	return writeExtras(result.Rows, settings, opts.XLSX, opts.PDF, opts.Labels)
}

// writeExtras writes the optional review outputs.
func writeExtras(rows []model.BoardRequirement, settings model.SawSettings, xlsx, pdf, labels string) error {
	if xlsx != "" {
		if err := export.WriteXLSX(xlsx, rows); err != nil {
			return fmt.Errorf("write %s: %w", xlsx, err)
		}
		fmt.Printf("Wrote review spreadsheet to %s\n", xlsx)
	}
	if pdf != "" {
		if err := export.WritePDF(pdf, rows, settings); err != nil {
			return fmt.Errorf("write %s: %w", pdf, err)
		}
		fmt.Printf("Wrote PDF summary to %s\n", pdf)
	}
	if labels != "" {
		if err := export.WriteLabels(labels, rows); err != nil {
			return fmt.Errorf("write %s: %w", labels, err)
		}
		fmt.Printf("Wrote label sheet to %s\n", labels)
	}
	return nil
}

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the saw settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = project.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("settings file already exists at %s", path)
			}
			if err := project.SaveSettings(path, model.DefaultSettings()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Printf("Wrote default settings to %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			fmt.Printf("Stock length:     %.0f mm\n", settings.StockLength)
			fmt.Printf("Max rip length:   %.0f mm\n", settings.MaxRipLength)
			fmt.Printf("Max board width:  %.0f mm\n", settings.MaxBoardWidth)
			fmt.Printf("Width bins:       %v\n", settings.WidthBins)
			fmt.Printf("Edge profile:     %s\n", settings.EdgeProfile)
			fmt.Printf("Routing:          %s\n", settings.Routing)
			return nil
		},
	})

	return cmd
}
