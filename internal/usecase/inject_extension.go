package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/oasdoc"
)

// DefaultHrefPrefix is prepended to the operationId to form the page link.
const DefaultHrefPrefix = "/reference"

// InjectExtensionUseCase adds the docs page link extension to every
// operation of OpenAPI documents and writes them back in place.
type InjectExtensionUseCase struct {
	settings  InjectSettings
	specs     SpecRepository
	writer    OutputWriter
	telemetry telemetry
	logger    *slog.Logger
}

// NewInjectExtensionUseCase creates a new InjectExtensionUseCase.
func NewInjectExtensionUseCase(settings InjectSettings, specs SpecRepository, writer OutputWriter, logger *slog.Logger) *InjectExtensionUseCase {
	if settings.Extension == "" {
		settings.Extension = oasdoc.DefaultExtension
	}
	if settings.HrefPrefix == "" {
		settings.HrefPrefix = DefaultHrefPrefix
	}
	logger = logger.With("usecase", "InjectExtension")
	return &InjectExtensionUseCase{
		settings:  settings,
		specs:     specs,
		writer:    writer,
		telemetry: newTelemetry(logger),
		logger:    logger,
	}
}

// ProcessFile injects the extension into one document and rewrites it.
func (uc *InjectExtensionUseCase) ProcessFile(ctx context.Context, file string) (err error) {
	log := uc.logger.With(slog.String("file", file))
	ctx, span := uc.telemetry.tracer.Start(ctx, "InjectExtension.ProcessFile",
		trace.WithAttributes(attribute.String("file", file)))
	defer func() {
		if r := recover(); r != nil {
			log.Error("Unexpected error while processing file", slog.Any("panic", r))
			err = fmt.Errorf("unexpected error processing %s: %v", file, r)
		}
		uc.telemetry.countFile(ctx, "inject", err == nil)
		endSpan(span, err)
	}()

	log.Info("Processing file")

	data, err := uc.specs.Read(ctx, file)
	if err != nil {
		log.Error("Failed to read file", slog.Any("error", err))
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	doc, err := oasdoc.Parse(data)
	if err != nil {
		log.Error("Failed to parse file", slog.Any("error", err))
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}

	if !doc.HasPaths() {
		log.Warn("No 'paths' found in the OpenAPI document")
	}

	res := doc.InjectDocsLink(uc.settings.Extension, uc.settings.HrefPrefix)
	for _, op := range res.Added {
		log.Debug("Added extension",
			slog.String("method", strings.ToUpper(op.Method)),
			slog.String("path", op.Path),
			slog.String("operation_id", op.ID))
	}
	for _, op := range res.Skipped {
		log.Info("Skipped operation, extension already exists",
			slog.String("method", strings.ToUpper(op.Method)),
			slog.String("path", op.Path),
			slog.String("operation_id", op.ID))
	}
	for _, op := range res.MissingID {
		log.Warn("No operationId found",
			slog.String("method", strings.ToUpper(op.Method)),
			slog.String("path", op.Path))
	}

	out, err := doc.MarshalJSON()
	if err != nil {
		log.Error("Failed to encode document", slog.Any("error", err))
		return fmt.Errorf("failed to encode %s: %w", file, err)
	}
	if uc.settings.Validate {
		if verr := oasdoc.Validate(ctx, out); verr != nil {
			log.Warn("OpenAPI document validation failed", slog.Any("validation_error", verr))
		}
	}
	if err := uc.writer.Write(ctx, file, out); err != nil {
		log.Error("Failed to write file", slog.Any("error", err))
		return fmt.Errorf("failed to write %s: %w", file, err)
	}

	log.Info("Successfully processed file",
		slog.Int("added", len(res.Added)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("missing_operation_id", len(res.MissingID)))
	return nil
}

// ProcessDirectory runs ProcessFile over every *.json document in dir.
// The error is only non-nil when dir cannot be listed.
func (uc *InjectExtensionUseCase) ProcessDirectory(ctx context.Context, dir string) (domain.BatchResult, error) {
	log := uc.logger.With(slog.String("reference_dir", dir))

	files, err := uc.specs.List(ctx, dir)
	if err != nil {
		log.Error("Failed to list reference directory", slog.Any("error", err))
		return domain.BatchResult{}, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		log.Warn("No JSON files found in the reference directory")
		return domain.BatchResult{}, nil
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	log.Info("Found JSON files to process", slog.Int("count", len(files)), slog.Any("files", names))

	var batch domain.BatchResult
	for _, file := range files {
		batch.Files = append(batch.Files, domain.FileResult{File: file, Err: uc.ProcessFile(ctx, file)})
	}

	log.Info("Completed processing",
		slog.Int("succeeded", batch.Succeeded()),
		slog.Int("total", len(batch.Files)))
	return batch, nil
}
