package services

import "context"

// TextExtractor turns a source document into one ordered text stream.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
