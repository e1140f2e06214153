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
	"github.com/i2y/oasmint/internal/mdx"
	"github.com/i2y/oasmint/internal/oasdoc"
)

// SourceDocument is the OpenAPI document an operation id was read from.
type SourceDocument struct {
	// FileName is the base name of the document, e.g. "coins.json".
	FileName string
	Doc      *oasdoc.Document
}

// ConvertDocsUseCase fetches the reference page of every operation and writes
// its callouts as an MDX document.
type ConvertDocsUseCase struct {
	settings  ConversionSettings
	converter *mdx.Converter
	fetcher   MarkdownFetcher
	specs     SpecRepository
	writer    OutputWriter
	telemetry telemetry
	logger    *slog.Logger
}

// NewConvertDocsUseCase creates a new ConvertDocsUseCase.
func NewConvertDocsUseCase(
	settings ConversionSettings,
	fetcher MarkdownFetcher,
	specs SpecRepository,
	writer OutputWriter,
	logger *slog.Logger,
) *ConvertDocsUseCase {
	logger = logger.With("usecase", "ConvertDocs")
	return &ConvertDocsUseCase{
		settings:  settings,
		converter: mdx.NewConverter(settings.Site, settings.ReferencePrefix),
		fetcher:   fetcher,
		specs:     specs,
		writer:    writer,
		telemetry: newTelemetry(logger),
		logger:    logger,
	}
}

// ProcessOperation fetches, converts and writes the document for one
// operation id. source may be nil, in which case no header is emitted.
// A page without callouts is reported as skipped, which counts as success.
// A panic in any stage is reported as a failed operation.
func (uc *ConvertDocsUseCase) ProcessOperation(ctx context.Context, operationID, outputDir string, mode domain.Mode, source *SourceDocument) (res domain.OperationResult) {
	log := uc.logger.With(slog.String("operation_id", operationID), slog.String("mode", string(mode)))
	ctx, span := uc.telemetry.tracer.Start(ctx, "ConvertDocs.ProcessOperation",
		trace.WithAttributes(attribute.String("operation_id", operationID)))
	defer func() {
		if r := recover(); r != nil {
			log.Error("Unexpected error while processing operation", slog.Any("panic", r))
			res.Status, res.Err = domain.StatusFailed, fmt.Errorf("unexpected error processing %s: %v", operationID, r)
		}
		uc.telemetry.countOperation(ctx, res.Status)
		endSpan(span, res.Err)
	}()

	res = domain.OperationResult{OperationID: operationID}

	// 1. Fetch
	markdown, err := uc.fetcher.FetchMarkdown(ctx, operationID, mode)
	if err != nil {
		log.Error("Failed to fetch markdown", slog.Any("error", err))
		res.Status, res.Err = domain.StatusFailed, fmt.Errorf("failed to fetch markdown for %s: %w", operationID, err)
		return res
	}
	log.Debug("Fetched markdown", slog.Int("bytes", len(markdown)))

	// 2. Locate the operation for the header
	var ref domain.OperationRef
	if source != nil && source.Doc != nil {
		if path, method, ok := source.Doc.Locate(operationID); ok {
			ref = domain.OperationRef{ReferenceFile: source.FileName, Path: path, Method: method}
		} else {
			log.Debug("Operation not found in document, writing without header")
		}
	}

	// 3. Extract, convert, rewrite and attach the header
	content, err := uc.converter.Convert(markdown, ref, mode)
	if err != nil {
		log.Error("Failed to convert markdown", slog.Any("error", err))
		res.Status, res.Err = domain.StatusFailed, fmt.Errorf("failed to convert markdown for %s: %w", operationID, err)
		return res
	}
	if strings.TrimSpace(content) == "" {
		log.Debug("No notice, tip or note sections found, skipping")
		res.Status = domain.StatusSkipped
		return res
	}

	// 4. Persist
	outPath := filepath.Join(outputDir, operationID+uc.settings.extension())
	if err := uc.writer.Write(ctx, outPath, []byte(content)); err != nil {
		log.Error("Failed to write document", slog.String("path", outPath), slog.Any("error", err))
		res.Status, res.Err = domain.StatusFailed, fmt.Errorf("failed to write %s: %w", outPath, err)
		return res
	}

	log.Info("Created document", slog.String("path", outPath))
	res.Status, res.OutputPath = domain.StatusWritten, outPath
	return res
}

// ProcessFile converts every operation of one OpenAPI document. An empty
// outputDir writes next to the document. Failures never escape as panics;
// they are reported through the returned FileResult.
func (uc *ConvertDocsUseCase) ProcessFile(ctx context.Context, file, outputDir string, mode domain.Mode) (res domain.FileResult) {
	log := uc.logger.With(slog.String("file", file))
	ctx, span := uc.telemetry.tracer.Start(ctx, "ConvertDocs.ProcessFile",
		trace.WithAttributes(attribute.String("file", file)))
	defer func() {
		if r := recover(); r != nil {
			log.Error("Unexpected error while processing file", slog.Any("panic", r))
			res.Err = fmt.Errorf("unexpected error processing %s: %v", file, r)
		}
		uc.telemetry.countFile(ctx, "convert", res.OK())
		endSpan(span, res.Err)
	}()

	res = domain.FileResult{File: file}
	log.Info("Processing file")

	data, err := uc.specs.Read(ctx, file)
	if err != nil {
		log.Error("Failed to read file", slog.Any("error", err))
		res.Err = fmt.Errorf("failed to read %s: %w", file, err)
		return res
	}
	doc, err := oasdoc.Parse(data)
	if err != nil {
		log.Error("Failed to parse file", slog.Any("error", err))
		res.Err = fmt.Errorf("failed to parse %s: %w", file, err)
		return res
	}
	if uc.settings.Validate {
		if verr := oasdoc.Validate(ctx, data); verr != nil {
			log.Warn("OpenAPI document validation failed", slog.Any("validation_error", verr))
		}
	}

	if !doc.HasPaths() {
		log.Warn("No 'paths' found in the OpenAPI document")
	}
	ids := doc.OperationIDs()
	if len(ids) == 0 {
		log.Warn("No operation IDs found")
		return res
	}

	if outputDir == "" {
		outputDir = filepath.Dir(file)
	}
	source := &SourceDocument{
		FileName: strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + JSONExtension,
		Doc:      doc,
	}

	log.Info("Found operation IDs to process", slog.Int("count", len(ids)))
	for _, id := range ids {
		res.Operations = append(res.Operations, uc.ProcessOperation(ctx, id, outputDir, mode, source))
	}

	log.Info("Finished file",
		slog.Int("succeeded", res.Succeeded()),
		slog.Int("total", len(res.Operations)))
	return res
}

// ProcessDirectory converts every *.json document directly inside
// referenceDir. An empty outputDir writes into referenceDir. The error is
// only non-nil for configuration problems such as a missing directory.
func (uc *ConvertDocsUseCase) ProcessDirectory(ctx context.Context, referenceDir, outputDir string, mode domain.Mode) (domain.BatchResult, error) {
	log := uc.logger.With(slog.String("reference_dir", referenceDir))

	files, err := uc.specs.List(ctx, referenceDir)
	if err != nil {
		log.Error("Failed to list reference directory", slog.Any("error", err))
		return domain.BatchResult{}, fmt.Errorf("failed to list %s: %w", referenceDir, err)
	}
	if len(files) == 0 {
		log.Warn("No JSON files found in the reference directory")
		return domain.BatchResult{}, nil
	}
	if outputDir == "" {
		outputDir = referenceDir
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	log.Info("Found JSON files to process", slog.Int("count", len(files)), slog.Any("files", names))

	var batch domain.BatchResult
	for _, file := range files {
		batch.Files = append(batch.Files, uc.ProcessFile(ctx, file, outputDir, mode))
	}

	log.Info("Completed processing",
		slog.Int("succeeded", batch.Succeeded()),
		slog.Int("total", len(batch.Files)))
	return batch, nil
}

// ProcessMode converts the documents of one mode: it reads
// <referenceDir>/<mode>/*.json and writes into <outputDir>/<mode>/. An empty
// outputDir falls back to the configured output directory.
func (uc *ConvertDocsUseCase) ProcessMode(ctx context.Context, mode domain.Mode, referenceDir, outputDir string) (domain.BatchResult, error) {
	if !mode.Valid() {
		_, err := domain.ParseMode(string(mode))
		if err == nil {
			err = fmt.Errorf("%w: a mode is required", domain.ErrInvalidMode)
		}
		uc.logger.Error("Invalid mode", slog.String("mode", string(mode)))
		return domain.BatchResult{}, err
	}
	if outputDir == "" {
		outputDir = uc.settings.outputDir()
	}

	modeRefDir := filepath.Join(referenceDir, string(mode))
	modeOutDir := filepath.Join(outputDir, string(mode))
	uc.logger.Info("Processing mode",
		slog.String("mode", string(mode)),
		slog.String("reference_dir", modeRefDir),
		slog.String("output_dir", modeOutDir))

	return uc.ProcessDirectory(ctx, modeRefDir, modeOutDir, mode)
}
