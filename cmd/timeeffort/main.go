package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-timeeffort/internal/config"
	"github.com/goliatone/go-timeeffort/internal/logging"
	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/export"
	"github.com/goliatone/go-timeeffort/pkg/renderers/tui"
	"github.com/goliatone/go-timeeffort/pkg/wizard"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Export flags shared by fill and render
	outDir  string
	formats []string

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "timeeffort",
	Short: "Fill and export Time & Effort reports",
	Long: `timeeffort collects a Time & Effort report through a four-step wizard
and exports the signed report as PDF, spreadsheet, text, HTML or JSON.

Percentages across the seven funding sources must add up to exactly 100%.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// fillCmd runs the interactive wizard
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a report interactively and export it on submit",
	Args:  cobra.NoArgs,
	RunE:  runFill,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file (defaults apply when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	for _, cmd := range []*cobra.Command{fillCmd, renderCmd} {
		cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides output.dir)")
		cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Export format, repeatable (overrides output.formats)")
	}

	rootCmd.AddCommand(fillCmd, renderCmd, validateCmd, sourcesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFill(cmd *cobra.Command, args []string) error {
	session := newSession()
	runner := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
		tui.WithLogger(logger),
	)

	doc, err := runner.Run(cmd.Context(), session)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing exported.")
		return nil
	}
	if err != nil {
		return err
	}
	return exportDocument(cmd.Context(), cmd.OutOrStdout(), doc)
}

func newSession(options ...wizard.Option) *wizard.Session {
	renderer := document.New(document.WithHeader(cfg.Header()))
	options = append([]wizard.Option{
		wizard.WithRenderer(renderer),
		wizard.WithLogger(logger),
	}, options...)
	return wizard.New(options...)
}

func newExportService() (*export.Service, error) {
	dir := cfg.Output.Dir
	if outDir != "" {
		dir = outDir
	}
	themes, err := export.NewThemeRegistry(cfg.Output.Theme.Dir)
	if err != nil {
		return nil, err
	}
	registry, err := export.DefaultRegistry(
		export.WithTemplateDir(cfg.Output.Templates),
		export.WithHTMLOptions(
			export.WithThemeProvider(themes, export.DefaultThemeName, ""),
			export.WithTheme(cfg.Output.Theme.Name, cfg.Output.Theme.Variant),
		),
	)
	if err != nil {
		return nil, err
	}
	return export.NewService(
		export.WithRegistry(registry),
		export.WithSink(export.NewFileSink(dir)),
		export.WithLogger(logger),
		export.WithDefaultFormats(cfg.Output.Formats...),
	)
}

func exportDocument(ctx context.Context, out io.Writer, doc document.Document) error {
	service, err := newExportService()
	if err != nil {
		return err
	}
	results, err := service.Export(ctx, doc, "", formats...)
	for _, result := range results {
		if !result.Success {
			fmt.Fprintf(out, "! %s: %v\n", result.Format, result.Err)
			continue
		}
		fmt.Fprintf(out, "* Saved %s (%d bytes) at %s\n",
			result.Location, result.Size, result.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return err
}
