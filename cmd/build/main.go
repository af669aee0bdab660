package main

// Build every requested CV variant and store the artifacts:
//   go run ./cmd/build --lang en,ru --profiles "teamlead;exclude_phone" --format all

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"cv-forge/internal/bootstrap"
	"cv-forge/internal/shared/config"
	"cv-forge/internal/shared/storage/db"
	"cv-forge/internal/shared/telemetry"
	"cv-forge/resume/model"
	"cv-forge/resume/render"
	"cv-forge/resume/resolve"
	"cv-forge/resume/service"
)

type options struct {
	dataFile    string
	jobTitle    string
	langs       string
	profiles    string
	formats     string
	outDir      string
	store       string
	buildID     string
	concurrency int
	verifyPDF   bool
	pdfCommand  string
	dryRun      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	telemetry.Init(cfg.Logging())

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(cfg config.Config, args []string) (options, error) {
	opts := options{}
	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	fs.StringVarP(&opts.dataFile, "data", "d", cfg.DataFile, "Path to the YAML resume source")
	fs.StringVarP(&opts.jobTitle, "job-title", "t", cfg.JobTitle, "Job title put into file names and headers")
	fs.StringVarP(&opts.langs, "lang", "l", "en,ru", "Comma separated languages to build")
	fs.StringVarP(&opts.profiles, "profiles", "p", "", "Profile sets separated by ';', tags by ','")
	fs.StringVarP(&opts.formats, "format", "f", "md,html,json", "Comma separated formats, or 'all'")
	fs.StringVarP(&opts.outDir, "out", "o", cfg.LocalStoreDir, "Output directory for the local store")
	fs.StringVar(&opts.store, "store", cfg.ObjectStoreType, "Artifact store: local, s3 or minio")
	fs.StringVar(&opts.buildID, "build-id", "", "Build id (uuid); generated when empty")
	fs.IntVarP(&opts.concurrency, "concurrency", "j", cfg.BuildConcurrency, "Targets built at once")
	fs.BoolVar(&opts.verifyPDF, "verify-pdf", false, "Check that PDF artifacts contain the owner's name")
	fs.StringVar(&opts.pdfCommand, "pdf-command", cfg.PDFCommand, "LaTeX engine used for PDF output")
	fs.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Resolve and render only; print keys without storing")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func run(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	opts, err := parseFlags(cfg, args)
	if err != nil {
		return err
	}
	cfg.ObjectStoreType = opts.store
	cfg.LocalStoreDir = opts.outDir
	cfg.PDFCommand = opts.pdfCommand
	cfg.BuildConcurrency = opts.concurrency
	if err := cfg.Validate(); err != nil {
		return err
	}

	langs, err := model.ParseLanguages(opts.langs)
	if err != nil {
		return err
	}
	formats, err := render.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	if len(langs) == 0 || len(formats) == 0 {
		return errors.New("at least one language and one format are required")
	}
	targets := service.Plan(langs, resolve.ParseProfileSets(opts.profiles), formats)

	doc, _, err := model.LoadFile(opts.dataFile)
	if err != nil {
		return err
	}

	app, err := bootstrap.BuildPipeline(ctx, cfg, bootstrap.PipelineOptions{
		DB:        db.OptionsFromEnv(db.DefaultCLIOptions()),
		DryRun:    opts.dryRun,
		VerifyPDF: opts.verifyPDF,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	results, err := app.Builder.Build(ctx, doc, service.Options{
		JobTitle: opts.jobTitle,
		BuildID:  opts.buildID,
		DryRun:   opts.dryRun,
	}, targets)
	if err != nil {
		return err
	}
	return printResults(stdout, results)
}

func printResults(w io.Writer, results []service.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tFORMAT\tSIZE\tKEY")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Target, res.Format, res.SizeBytes, res.StorageKey)
	}
	return tw.Flush()
}
