package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kass/location-history/pkg/config"
	"github.com/kass/location-history/pkg/history"
	"github.com/kass/location-history/pkg/models"
	"github.com/kass/location-history/pkg/render"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options holds the flags shared by all commands
type options struct {
	inFile     string
	fromDate   string
	toDate     string
	configFile string
	verbose    bool

	// bounds
	jsonOutput bool
	noPadding  bool

	// render
	format    string
	title     string
	width     int
	outDir    string
	allPoints bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "lhv",
		Short:         "Summarize and map a location history export",
		Long:          `Reads a location history export (Records.json), filters it by date and computes the map boundaries for plotting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the number of records and their time span",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, opts)
		},
	}

	boundsCmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the map boundaries of the selected records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBounds(cmd, opts)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Write the selected records as a map document",
		Long:  `Writes the selected records and their map boundaries as a KML or GPX document named with a timestamp suffix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.inFile, "infile", "i", "", "Location history export (JSON)")
	rootCmd.PersistentFlags().StringVar(&opts.fromDate, "from", "", "Start date YYYY-MM-DD (inclusive)")
	rootCmd.PersistentFlags().StringVar(&opts.toDate, "to", "", "End date YYYY-MM-DD (inclusive)")
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	_ = rootCmd.MarkPersistentFlagRequired("infile")

	boundsCmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output boundaries as JSON")
	boundsCmd.Flags().BoolVar(&opts.noPadding, "no-padding", false, "Report the raw boundaries only")

	renderCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: kml, gpx")
	renderCmd.Flags().StringVarP(&opts.title, "title", "t", "", "Map title")
	renderCmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Map width in pixels")
	renderCmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Output directory")
	renderCmd.Flags().BoolVar(&opts.allPoints, "all-points", false, "Also plot records without altitude")

	rootCmd.AddCommand(summaryCmd, boundsCmd, renderCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(userMessage(err)))
		os.Exit(1)
	}
}

// userMessage turns an error into the single line shown to the user
func userMessage(err error) string {
	var pe *history.ParseError
	switch {
	case errors.As(err, &pe):
		return fmt.Sprintf("ERROR: Sorry, not a valid location history file! Please export it again and retry. (%v)", err)
	case errors.Is(err, history.ErrEmptyResultSet):
		return fmt.Sprintf("ERROR: %v. Try a wider --from/--to range.", err)
	default:
		return fmt.Sprintf("ERROR: %v", err)
	}
}

// setup loads the configuration, applies flag overrides and builds the logger
func setup(cmd *cobra.Command, opts *options) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Render.Format = opts.format
	}
	if flags.Changed("title") {
		cfg.Render.Title = opts.title
	}
	if flags.Changed("width") {
		cfg.Render.Width = opts.width
	}
	if flags.Changed("out-dir") {
		cfg.Render.OutDir = opts.outDir
	}
	if flags.Changed("all-points") {
		cfg.Render.SkipMissingAltitude = !opts.allPoints
	}
	if opts.verbose {
		cfg.LogLevel = zerolog.LevelDebugValue
	}

	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return cfg, logger, nil
}

// selection is the outcome of loading and filtering a history
type selection struct {
	summary  history.Summary
	picked   history.Summary
	records  []models.LocationRecord
	selected []models.LocationRecord
}

func loadSelection(opts *options, logger zerolog.Logger) (*selection, error) {
	rng, err := history.NewDateRange(opts.fromDate, opts.toDate)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("file", opts.inFile).Msg("Reading and formatting your location history...")
	records, err := history.Load(opts.inFile)
	if err != nil {
		return nil, err
	}

	summary, err := history.Summarize(records)
	if err != nil {
		return nil, err
	}

	selected := history.FilterByDate(records, rng, summary)
	logger.Debug().
		Int("total", len(records)).
		Int("selected", len(selected)).
		Str("from", opts.fromDate).
		Str("to", opts.toDate).
		Msg("Filtered records by date")
	if len(selected) == 0 {
		return nil, history.ErrEmptyResultSet
	}

	picked, err := history.Summarize(selected)
	if err != nil {
		return nil, err
	}

	return &selection{summary: summary, picked: picked, records: records, selected: selected}, nil
}

func runSummary(cmd *cobra.Command, opts *options) error {
	_, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	sel, err := loadSelection(opts, logger)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), sel)
	return nil
}

func runBounds(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	sel, err := loadSelection(opts, logger)
	if err != nil {
		return err
	}

	padding := cfg.Padding
	if opts.noPadding {
		padding = history.NoPadding
	}

	raw, err := history.Boundaries(sel.selected)
	if err != nil {
		return err
	}
	padded, err := history.CalculateMapBoundaries(sel.selected, padding)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeBoundsJSON(out, sel, raw, padded, padding)
	}

	printSummary(out, sel)
	printBox(out, "Border points", raw)
	if !opts.noPadding {
		printBox(out, "Map boundaries", padded)
	}
	return nil
}

func runRender(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	sel, err := loadSelection(opts, logger)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), sel)

	box, err := history.CalculateMapBoundaries(sel.selected, cfg.Padding)
	if err != nil {
		return err
	}

	renderer, err := render.ForFormat(cfg.Render.Format)
	if err != nil {
		return err
	}

	logger.Info().Str("format", cfg.Render.Format).Msg("Building the map...")
	writer := render.NewFileWriter(renderer, cfg.Render.OutDir, cfg.Render.Prefix, logger)
	path, err := writer.Write(box, sel.selected, cfg.RenderOptions())
	if err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Done. Saved the map as %s; bye.", path)))
	return nil
}
