// Package main provides the CLI entry point for guidedoc.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/config"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/output"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/render"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/server"
)

var (
	configPath string
	debug      bool

	component  string
	format     string
	outputPath string
	pretty     bool
	outDir     string

	dumpDefault bool

	cfg *config.Config
	log *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "guidedoc",
		Short: "Synthesize UI guideline pages from documentation sheets",
		Long: `guidedoc reads flat guideline rows (component, category, subcategory,
guideline) from an XLSX workbook, a CSV file or a CSV export URL and
synthesizes one structured page per component.`,
		SilenceUsage:      true,
		PersistentPreRunE: prepare,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: built-in)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Log debug messages to the console")

	componentsCmd := &cobra.Command{
		Use:   "components [source]",
		Short: "List the components documented in the source",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runComponents,
	}

	renderCmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Synthesize the page of a component",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&component, "component", "", "Component to render")
	renderCmd.Flags().StringVar(&format, "format", "markdown", "Output format: json, markdown, html, text, frames")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	renderCmd.Flags().StringVar(&outDir, "outdir", "", "Directory for per-component output files, renders every component")

	serveCmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve components and pages to design tool plugins",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}

	dumpCmd := &cobra.Command{
		Use:   "dumpconfig",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE:  runDumpConfig,
	}
	dumpCmd.Flags().BoolVar(&dumpDefault, "default", false, "Print the built-in default configuration")

	rootCmd.AddCommand(componentsCmd, renderCmd, serveCmd, dumpCmd)

	err := rootCmd.Execute()
	if log != nil {
		_ = log.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func prepare(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	if cfg, err = config.LoadConfiguration(configPath); err != nil {
		return err
	}
	if debug {
		cfg.Logging.EnableDebug()
	}
	if log, err = cfg.Logging.Prepare(); err != nil {
		return err
	}
	log.Debug("Program started", zap.String("command", cmd.Name()))
	return nil
}

func location(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func loadRows(ctx context.Context, args []string) (*models.RowSet, error) {
	src, err := cfg.Source.Open(location(args), log)
	if err != nil {
		return nil, err
	}
	set, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to read rows: %w", err)
	}
	if set.Rejected > 0 {
		log.Warn("Records with missing cells were skipped", zap.String("source", src.Key()), zap.Int("count", set.Rejected))
	}
	return set, nil
}

func runComponents(cmd *cobra.Command, args []string) error {
	set, err := loadRows(cmd.Context(), args)
	if err != nil {
		return err
	}
	for _, name := range guidedoc.Components(set.Rows) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	ext, ok := extensions[format]
	if !ok {
		return fmt.Errorf("invalid format: %s (must be json, markdown, html, text or frames)", format)
	}
	if component == "" && outDir == "" {
		return errors.New("either --component or --outdir is required")
	}

	set, err := loadRows(cmd.Context(), args)
	if err != nil {
		return err
	}
	opts := cfg.Options(log)

	if component != "" {
		res := guidedoc.Synthesize(set.Rows, component, opts)
		reportDiagnostics(res)

		data, err := renderDocument(cmd.Context(), res, format, pretty, opts)
		if err != nil {
			return fmt.Errorf("rendering failed: %w", err)
		}

		if outputPath != "" {
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		} else if outDir == "" {
			_, _ = cmd.OutOrStdout().Write(data)
		}
	}

	if outDir != "" {
		if err := writeComponentFiles(cmd.Context(), set.Rows, outDir, ext, opts); err != nil {
			return fmt.Errorf("failed to write component files: %w", err)
		}
	}
	return nil
}

var extensions = map[string]string{
	"json":     ".json",
	"markdown": ".md",
	"html":     ".html",
	"text":     ".txt",
	"frames":   ".frames.json",
}

// renderDocument serializes a synthesis result in the requested format.
func renderDocument(ctx context.Context, res *guidedoc.Result, format string, pretty bool, opts guidedoc.Options) ([]byte, error) {
	switch format {
	case "json":
		return output.ToJSON(res, pretty)
	case "markdown":
		return []byte(render.Markdown(res.Layout)), nil
	case "html":
		return render.HTMLPage(res.Component, render.Markdown(res.Layout))
	case "text":
		var buf bytes.Buffer
		if err := render.Text(&buf, res.Layout); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "frames":
		canvas := render.NewFrameCanvas(render.FrameOptions{
			Padding: opts.Metrics.Padding,
			Spacing: opts.Metrics.ItemSpacing,
		})
		if _, err := render.Materialize(ctx, canvas, res.Layout); err != nil {
			return nil, err
		}
		return output.ToJSON(canvas.Frames(), pretty)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func writeComponentFiles(ctx context.Context, rows []models.Row, dir, ext string, opts guidedoc.Options) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, name := range guidedoc.Components(rows) {
		res := guidedoc.Synthesize(rows, name, opts)
		reportDiagnostics(res)

		data, err := renderDocument(ctx, res, format, pretty, opts)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, slug.Make(name)+ext)
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
		log.Debug("Component written", zap.String("component", name), zap.String("file", filename))
	}
	return nil
}

func reportDiagnostics(res *guidedoc.Result) {
	for _, d := range res.Diagnostics {
		log.Warn("Synthesis problem", zap.String("component", res.Component), zap.Stringer("kind", d.Kind), zap.String("detail", d.Error()))
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	src, err := cfg.Source.Open(location(args), log)
	if err != nil {
		return err
	}

	srv, err := server.New(src, server.Options{
		Synthesis:      cfg.Options(log),
		CacheSize:      cfg.Source.CacheSize,
		CacheTTL:       cfg.Source.CacheTTL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, cfg.Server.Addr)
}

func runDumpConfig(cmd *cobra.Command, _ []string) error {
	if dumpDefault {
		_, err := cmd.OutOrStdout().Write(config.Prepare())
		return err
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
