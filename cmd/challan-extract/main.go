package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aashish23092/tds-challan-extractor/config"
	"github.com/Aashish23092/tds-challan-extractor/dto"
	"github.com/Aashish23092/tds-challan-extractor/logger"
	"github.com/Aashish23092/tds-challan-extractor/service"
)

var (
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleFaint = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

var errNoInputs = errors.New("no PDF files found in the given paths")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	var cfgFile string

	cmd := &cobra.Command{
		Use:   "challan-extract [files or directories...]",
		Short: "Extract TDS challan fields from PDFs into a spreadsheet",
		Long: `challan-extract reads TDS challan PDFs, pulls out challan number, deposit date,
BSR code, amounts, TAN and assessment year, and writes one row per document to an XLSX file.
Directories are searched recursively for .pdf files.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return run(cmd.Context(), v, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json, toml)")
	flags.StringP("out", "o", "", "output XLSX path (default: EXPORT_FILENAME in the working directory)")
	flags.StringP("password", "p", "", "password applied to encrypted challans")
	flags.Duration("timeout", 0, "per-document timeout (default DOCUMENT_TIMEOUT)")
	flags.Int("workers", 0, "documents processed in parallel (default EXTRACT_WORKERS)")
	flags.Bool("strict", false, "validate every PDF with pdfcpu before extraction")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	_ = v.BindPFlag("OUT", flags.Lookup("out"))
	_ = v.BindPFlag("PDF_PASSWORD", flags.Lookup("password"))
	_ = v.BindPFlag("DOCUMENT_TIMEOUT", flags.Lookup("timeout"))
	_ = v.BindPFlag("EXTRACT_WORKERS", flags.Lookup("workers"))
	_ = v.BindPFlag("STRICT_PDF_VALIDATION", flags.Lookup("strict"))
	_ = v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))

	return cmd
}

func run(ctx context.Context, v *viper.Viper, args []string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromViper(v)
	log := logger.Init(cfg.LogLevel, "text")

	paths, err := collectPDFPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(stderr, styleWarn.Render("Please provide at least one PDF file."))
		return errNoInputs
	}

	docs, err := loadDocuments(paths, v.GetString("PDF_PASSWORD"))
	if err != nil {
		return err
	}

	svc := service.NewChallanService(service.NewPDFProcessor(cfg.StrictPDFValidation), service.ChallanServiceConfig{
		DocumentTimeout: cfg.DocumentTimeout,
		Workers:         cfg.Workers,
	}, log)

	table, err := svc.ExtractBatch(ctx, docs)
	if err != nil {
		return err
	}

	data, err := service.NewXLSXExporter(log).Export(table)
	if err != nil {
		return err
	}

	out := v.GetString("OUT")
	if out == "" {
		out = cfg.ExportFilename
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSummary(stdout, table, out)
	return nil
}

func printSummary(w io.Writer, table *dto.ResultTable, out string) {
	for _, r := range table.Records {
		if r.Failed() {
			fmt.Fprintf(w, "%s %s\n", styleError.Render("ERROR"), r.Notice())
			continue
		}
		challanNo, _ := r.Value("Challan No")
		amount, _ := r.Value("Amount")
		fmt.Fprintf(w, "%s %s %s\n", styleOK.Render("OK   "), r.File,
			styleFaint.Render(fmt.Sprintf("challan=%q amount=%q", challanNo, amount)))
	}
	fmt.Fprintf(w, "\nExtraction complete: %d documents, %d failed\n", len(table.Records), table.Failures())
	fmt.Fprintf(w, "Output: %s\n", out)
}
