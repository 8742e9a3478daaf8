package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
	"github.com/pdfdesk/pdfdesk/internal/pdfops"
)

// Processor drives page-by-page recognition over whole documents. Scanned
// PDFs are exploded into their embedded page images first, then each image
// goes through the engine.
type Processor struct {
	engine Engine
	pdf    *pdfops.Engine
	log    *logrus.Logger
}

func NewProcessor(engine Engine, pdf *pdfops.Engine, log *logrus.Logger) *Processor {
	return &Processor{engine: engine, pdf: pdf, log: log}
}

// PDFToText recognises every page image of a scanned PDF and writes the
// concatenated text next to the source as <stem>_ocr.txt.
func (p *Processor) PDFToText(ctx context.Context, in string) (string, error) {
	images, cleanup, err := p.pageImages(in)
	if err != nil {
		return "", err
	}
	defer cleanup()

	var parts []string
	for i, img := range images {
		text, err := p.engine.Recognize(ctx, img)
		if errors.Is(err, ErrNoText) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return "", ErrNoText
	}

	out := artifact.Derived(in, "_ocr", ".txt")
	if err := os.WriteFile(out, []byte(strings.Join(parts, "\n\n")), 0o600); err != nil {
		return "", fmt.Errorf("write recognized text: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"engine": p.engine.Name(),
		"pages":  len(images),
	}).Debug("Recognized document text")
	return out, nil
}

// ImageToText recognises a single photo or scan and writes the text next to
// the source.
func (p *Processor) ImageToText(ctx context.Context, in string) (string, error) {
	text, err := p.engine.Recognize(ctx, in)
	if err != nil {
		return "", err
	}
	out := artifact.Derived(in, "_ocr", ".txt")
	if err := os.WriteFile(out, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("write recognized text: %w", err)
	}
	return out, nil
}

// SearchableFromPDF rebuilds a scanned PDF with an invisible text layer,
// rendering each page image into a one-page PDF and concatenating them.
func (p *Processor) SearchableFromPDF(ctx context.Context, in string) (artifact.Artifact, error) {
	images, cleanup, err := p.pageImages(in)
	if err != nil {
		return artifact.Artifact{}, err
	}
	defer cleanup()

	workDir := filepath.Dir(images[0])
	pagePDFs := make([]string, 0, len(images))
	for i, img := range images {
		page := filepath.Join(workDir, fmt.Sprintf("page_%04d.pdf", i+1))
		if err := p.engine.SearchablePage(ctx, img, page); err != nil {
			return artifact.Artifact{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		pagePDFs = append(pagePDFs, page)
	}

	out := artifact.DerivedPDF(in, artifact.SuffixSearchable)
	if len(pagePDFs) == 1 {
		if err := os.Rename(pagePDFs[0], out); err != nil {
			return artifact.Artifact{}, fmt.Errorf("place searchable output: %w", err)
		}
		return artifact.Artifact{Path: out, PageCount: 1}, nil
	}

	total, err := p.pdf.MergeInto(pagePDFs, out)
	if err != nil {
		return artifact.Artifact{}, err
	}
	return artifact.Artifact{Path: out, PageCount: total}, nil
}

// SearchableFromImage renders a single photo into a one-page searchable PDF.
func (p *Processor) SearchableFromImage(ctx context.Context, in string) (artifact.Artifact, error) {
	out := artifact.DerivedPDF(in, artifact.SuffixSearchable)
	if err := p.engine.SearchablePage(ctx, in, out); err != nil {
		return artifact.Artifact{}, err
	}
	return artifact.Artifact{Path: out, PageCount: 1}, nil
}

// pageImages extracts the embedded page images of a scanned PDF into a temp
// directory and returns them in page order with a cleanup func.
func (p *Processor) pageImages(in string) ([]string, func(), error) {
	if _, err := artifact.Stat(in); err != nil {
		return nil, nil, err
	}

	dir, err := os.MkdirTemp(filepath.Dir(in), "ocr_")
	if err != nil {
		return nil, nil, fmt.Errorf("create work dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	images, err := p.pdf.ExtractImages(in, dir, nil)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if len(images) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(in), ErrNoText)
	}
	sort.Strings(images)
	return images, cleanup, nil
}
