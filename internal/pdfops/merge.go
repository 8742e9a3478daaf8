package pdfops

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

// Merge concatenates the queued documents in order into a single artifact
// named after the first entry's stem. Fewer than two documents is an error
// and performs no I/O, so the caller can keep the queue intact and retry.
func (e *Engine) Merge(paths []string) (artifact.Artifact, error) {
	if len(paths) < 2 {
		return artifact.Artifact{}, ErrNeedTwoFiles
	}
	out := artifact.DerivedPDF(paths[0], artifact.SuffixMerged)
	total, err := e.MergeInto(paths, out)
	if err != nil {
		return artifact.Artifact{}, err
	}

	e.log.WithFields(logrus.Fields{
		"documents": len(paths),
		"pages":     total,
	}).Debug("Merged documents")
	return artifact.Artifact{Path: out, PageCount: total}, nil
}

// MergeInto concatenates documents into an explicit output path, returning
// the merged page count. Used by Merge and by searchable-PDF assembly.
func (e *Engine) MergeInto(paths []string, out string) (int, error) {
	for _, p := range paths {
		if _, err := artifact.Stat(p); err != nil {
			return 0, err
		}
	}

	if err := api.MergeCreateFile(paths, out, false, e.conf); err != nil {
		return 0, fmt.Errorf("merge %d documents: %w", len(paths), err)
	}

	total, err := api.PageCountFile(out)
	if err != nil {
		return 0, fmt.Errorf("page count of merged output: %w", err)
	}
	return total, nil
}
