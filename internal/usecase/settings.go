package usecase

import (
	"github.com/i2y/oasmint/internal/domain"
)

const (
	// DefaultOutputDir receives mode-scoped output when no directory is given.
	DefaultOutputDir = "mdx"
	// DefaultOutputExtension is the extension of generated documents.
	DefaultOutputExtension = ".mdx"
	// JSONExtension is the only accepted input extension.
	JSONExtension = ".json"
)

// ConversionSettings is the immutable configuration of ConvertDocsUseCase.
type ConversionSettings struct {
	Site            domain.DocsSite
	OutputDir       string
	OutputExtension string
	ReferencePrefix string
	// Validate additionally runs every document through the OpenAPI validator
	// and logs what it finds.
	Validate bool
}

func (s ConversionSettings) extension() string {
	if s.OutputExtension == "" {
		return DefaultOutputExtension
	}
	return s.OutputExtension
}

func (s ConversionSettings) outputDir() string {
	if s.OutputDir == "" {
		return DefaultOutputDir
	}
	return s.OutputDir
}

// InjectSettings configures InjectExtensionUseCase.
type InjectSettings struct {
	Extension  string
	HrefPrefix string
	Validate   bool
}
