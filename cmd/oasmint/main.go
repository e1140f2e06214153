package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/i2y/oasmint/configs"
	"github.com/i2y/oasmint/internal/adapter/outbound/docsfetcher"
	"github.com/i2y/oasmint/internal/adapter/outbound/filestore"
	"github.com/i2y/oasmint/internal/adapter/outbound/memstore"
	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/usecase"
)

const (
	commandInject  = "inject"
	commandConvert = "convert"
)

// options are the parsed command line flags.
type options struct {
	command  string
	dir      string
	file     string
	output   string
	mode     string
	dryRun   bool
	validate bool
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	// === Configuration ===
	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// === Command Line Flags ===
	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	// === Logging ===
	logLevel := cfg.ParsedLogLevel()
	if opts.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	logger.Debug("Logger initialized.", slog.String("level", logLevel.String()), slog.String("command", opts.command))

	// === OpenTelemetry Initialization ===
	shutdownOtel, err := initOtelProvider(cfg)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === Dependency Injection ===
	store := filestore.New(logger)
	var writer usecase.OutputWriter = store
	var dryRunStore *memstore.InMemoryOutputStore
	if opts.dryRun {
		dryRunStore = memstore.NewInMemoryOutputStore(logger)
		writer = dryRunStore
		logger.Info("Dry run: no files will be written.")
	}

	var batch domain.BatchResult
	switch opts.command {
	case commandInject:
		uc := usecase.NewInjectExtensionUseCase(cfg.Inject(opts.validate), store, writer, logger)
		batch, err = runInject(ctx, uc, store, opts)
	case commandConvert:
		mode, perr := domain.ParseMode(opts.mode)
		if perr != nil {
			logger.Error("Invalid mode", slog.Any("error", perr))
			return 1
		}

		httpClient := &http.Client{Timeout: cfg.RequestTimeout}
		logger.Debug("HTTP Client configured.", slog.Duration("timeout", cfg.RequestTimeout))
		fetcher := docsfetcher.New(httpClient, cfg.Site(), logger)

		uc := usecase.NewConvertDocsUseCase(cfg.Conversion(opts.validate), fetcher, store, writer, logger)
		batch, err = runConvert(ctx, uc, store, opts, mode)
	}
	if err != nil {
		logger.Error("Command failed", slog.String("command", opts.command), slog.Any("error", err))
		return 1
	}

	if dryRunStore != nil {
		logger.Info("Dry run summary",
			slog.Int("files", len(dryRunStore.Paths())),
			slog.Int("bytes", dryRunStore.TotalBytes()),
			slog.Any("paths", dryRunStore.Paths()))
	}

	if !batch.OK() {
		logger.Error("Some files failed to process",
			slog.Int("succeeded", batch.Succeeded()),
			slog.Int("total", len(batch.Files)))
		return 1
	}
	return 0
}

func parseFlags(args []string, cfg *configs.Config, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("oasmint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.command, "command", commandConvert, "Command to run: inject or convert")
	fs.StringVar(&opts.dir, "dir", cfg.ReferenceDir, "Directory containing OpenAPI JSON files")
	fs.StringVar(&opts.file, "file", "", "Single OpenAPI JSON file to process (overrides -dir)")
	fs.StringVar(&opts.output, "output", "", "Output directory for generated documents (convert only)")
	fs.StringVar(&opts.mode, "mode", "", "Docs mode: pro or demo (convert only)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Render documents without writing them")
	fs.BoolVar(&opts.validate, "validate", false, "Validate documents with the OpenAPI loader")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.command = strings.ToLower(opts.command)
	if opts.command != commandInject && opts.command != commandConvert {
		fmt.Fprintf(stderr, "unknown command %q: expected %s or %s\n", opts.command, commandInject, commandConvert)
		return opts, fmt.Errorf("unknown command %q", opts.command)
	}
	return opts, nil
}

func runInject(ctx context.Context, uc *usecase.InjectExtensionUseCase, specs usecase.SpecRepository, opts options) (domain.BatchResult, error) {
	if opts.file == "" {
		return uc.ProcessDirectory(ctx, opts.dir)
	}
	if err := usecase.CheckSpecFile(ctx, specs, opts.file); err != nil {
		return domain.BatchResult{}, err
	}
	res := domain.FileResult{File: opts.file, Err: uc.ProcessFile(ctx, opts.file)}
	return domain.BatchResult{Files: []domain.FileResult{res}}, nil
}

func runConvert(ctx context.Context, uc *usecase.ConvertDocsUseCase, specs usecase.SpecRepository, opts options, mode domain.Mode) (domain.BatchResult, error) {
	switch {
	case opts.file != "":
		if err := usecase.CheckSpecFile(ctx, specs, opts.file); err != nil {
			return domain.BatchResult{}, err
		}
		res := uc.ProcessFile(ctx, opts.file, opts.output, mode)
		return domain.BatchResult{Files: []domain.FileResult{res}}, nil
	case mode != domain.ModeNone:
		return uc.ProcessMode(ctx, mode, opts.dir, opts.output)
	default:
		return uc.ProcessDirectory(ctx, opts.dir, opts.output, mode)
	}
}

// initOtelProvider initializes the OpenTelemetry SDK and sets up the OTLP trace exporter.
// It returns a shutdown function to be called on application exit.
func initOtelProvider(cfg *configs.Config) (func(context.Context) error, error) {
	ctx := context.Background()

	if cfg.OtelExporterOtlpEndpoint == "" {
		slog.Debug("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	slog.Info("Initializing OTLP exporter.", slog.String("endpoint", cfg.OtelExporterOtlpEndpoint))

	grpcOpts := []grpc.DialOption{}
	if cfg.OtelExporterOtlpInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		slog.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(cfg.OtelExporterOtlpEndpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("oasmint"),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("OpenTelemetry TracerProvider configured.")

	return func(ctx context.Context) error {
		providerErr := tp.Shutdown(ctx)
		connErr := conn.Close()
		return errors.Join(providerErr, connErr)
	}, nil
}
