// Package ocr wraps text recognition behind a small engine contract, with a
// Tesseract-backed default implementation.
package ocr

import (
	"context"
	"errors"
)

// ErrNoText indicates recognition ran but produced no usable text, typically
// a very poor quality scan.
var ErrNoText = errors.New("no recognizable text")

// Engine is the OCR provider contract: one image in, text or a searchable
// single-page PDF out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imagePath string) (string, error)
	SearchablePage(ctx context.Context, imagePath, outPDF string) error
}
