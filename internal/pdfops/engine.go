// Package pdfops implements every PDF transformation behind the bot: the
// chained page editor (rotate/delete/extract), merge, split, compression,
// watermark stamping and plain-text extraction. All heavy lifting is
// delegated to pdfcpu; this package owns operation semantics, artifact
// lineage and page-count bookkeeping.
package pdfops

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

var (
	// ErrDeleteAllPages rejects a delete selection covering the whole
	// document. The operation must never silently produce an empty PDF.
	ErrDeleteAllPages = errors.New("selection would delete every page")

	// ErrNeedTwoFiles rejects a merge over fewer than two documents.
	ErrNeedTwoFiles = errors.New("merge requires at least two documents")

	// ErrNoPages rejects an operation with an empty page selection.
	ErrNoPages = errors.New("empty page selection")
)

// Engine applies transforms to PDF artifacts. Every operation reads one file
// and writes a new one; inputs are never mutated.
type Engine struct {
	conf *model.Configuration
	log  *logrus.Logger
}

func NewEngine(log *logrus.Logger) *Engine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Engine{conf: conf, log: log}
}

// PageCount returns the number of pages in the document, mapping a vanished
// file to artifact.ErrMissing.
func (e *Engine) PageCount(path string) (int, error) {
	if _, err := artifact.Stat(path); err != nil {
		return 0, err
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count of %s: %w", path, err)
	}
	return n, nil
}

// Rotate turns the selected pages by angle degrees (any multiple of 90;
// negatives allowed). Pages outside the selection pass through unchanged and
// the page count is preserved. A normalized angle of 0 is a no-op that
// returns the input artifact without writing anything.
func (e *Engine) Rotate(in string, pages []int, angle int) (artifact.Artifact, error) {
	if len(pages) == 0 {
		return artifact.Artifact{}, ErrNoPages
	}
	total, err := e.PageCount(in)
	if err != nil {
		return artifact.Artifact{}, err
	}

	angle = normalizeAngle(angle)
	if angle == 0 {
		return artifact.Artifact{Path: in, PageCount: total}, nil
	}

	out := artifact.DerivedPDF(in, artifact.SuffixRotated)
	if err := api.RotateFile(in, out, angle, pageStrings(pages), e.conf); err != nil {
		return artifact.Artifact{}, fmt.Errorf("rotate: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"input": in,
		"angle": angle,
		"pages": len(pages),
	}).Debug("Rotated pages")
	return artifact.Artifact{Path: out, PageCount: total}, nil
}

// Delete removes the selected pages, keeping the survivors in their original
// relative order. A selection covering every page is rejected and the input
// left untouched.
func (e *Engine) Delete(in string, pages []int) (artifact.Artifact, error) {
	if len(pages) == 0 {
		return artifact.Artifact{}, ErrNoPages
	}
	total, err := e.PageCount(in)
	if err != nil {
		return artifact.Artifact{}, err
	}
	if len(pages) >= total {
		return artifact.Artifact{}, ErrDeleteAllPages
	}

	out := artifact.DerivedPDF(in, artifact.SuffixDeleted)
	if err := api.RemovePagesFile(in, out, pageStrings(pages), e.conf); err != nil {
		return artifact.Artifact{}, fmt.Errorf("delete pages: %w", err)
	}

	kept := total - len(pages)
	e.log.WithFields(logrus.Fields{
		"input": in,
		"kept":  kept,
	}).Debug("Deleted pages")
	return artifact.Artifact{Path: out, PageCount: kept}, nil
}

// Extract builds a side-branch artifact containing only the selected pages in
// ascending page order, leaving the source untouched. rawSpec is the user's
// original range expression, preserved in the output name.
func (e *Engine) Extract(in string, pages []int, rawSpec string) (artifact.Artifact, error) {
	if len(pages) == 0 {
		return artifact.Artifact{}, ErrNoPages
	}
	if _, err := e.PageCount(in); err != nil {
		return artifact.Artifact{}, err
	}

	out := artifact.Derived(in, artifact.ExtractSuffix(rawSpec), ".pdf")
	if err := api.TrimFile(in, out, pageStrings(pages), e.conf); err != nil {
		return artifact.Artifact{}, fmt.Errorf("extract pages: %w", err)
	}

	return artifact.Artifact{Path: out, PageCount: len(pages)}, nil
}

// Compress rewrites the document through pdfcpu's optimizer, producing
// compressed_<name> next to the input.
func (e *Engine) Compress(in string) (artifact.Artifact, error) {
	total, err := e.PageCount(in)
	if err != nil {
		return artifact.Artifact{}, err
	}

	dir, base := filepath.Split(in)
	out := filepath.Join(dir, artifact.PrefixCompressed+base)
	if err := api.OptimizeFile(in, out, e.conf); err != nil {
		return artifact.Artifact{}, fmt.Errorf("optimize: %w", err)
	}
	return artifact.Artifact{Path: out, PageCount: total}, nil
}

// normalizeAngle maps any multiple of 90 into {0, 90, 180, 270}.
func normalizeAngle(angle int) int {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	return angle
}

// pageStrings converts a page selection into the string form pdfcpu expects.
func pageStrings(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}
