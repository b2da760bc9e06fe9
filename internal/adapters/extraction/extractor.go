// Package extraction turns statement documents into plain text for the record parser.
package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/loan_report_app/internal/apperrors"
	portssvc "github.com/SscSPs/loan_report_app/internal/core/ports/services"
)

// FileExtractor reads statements from the local filesystem. PDF files are laid out
// one cell per line; any other file is taken as already-extracted text.
type FileExtractor struct{}

// NewFileExtractor creates a new FileExtractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Ensure implementation matches interface
var _ portssvc.TextExtractor = (*FileExtractor)(nil)

// ExtractText returns the text of the document at path.
func (e *FileExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperrors.ErrExtraction, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", apperrors.ErrExtraction, path)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := extractPDF(ctx, path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", apperrors.ErrExtraction, path, err)
		}
		return text, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperrors.ErrExtraction, path, err)
	}
	return string(b), nil
}
