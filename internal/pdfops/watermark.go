package pdfops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

// gridAnchors maps the 3×3 selector cells onto pdfcpu anchor positions,
// row 0 at the top.
var gridAnchors = [3][3]string{
	{"tl", "tc", "tr"},
	{"l", "c", "r"},
	{"bl", "bc", "br"},
}

// Watermark stamps text onto every page. Without mosaic, one instance is
// placed at the 3×3 grid cell's anchor; with mosaic, the cell is ignored and
// the text is repeated across a fixed grid covering the whole page.
func (e *Engine) Watermark(in, text string, row, col int, mosaic bool) (artifact.Artifact, error) {
	total, err := e.PageCount(in)
	if err != nil {
		return artifact.Artifact{}, err
	}

	out := artifact.DerivedPDF(in, artifact.SuffixWatermark)
	if mosaic {
		err = e.stampMosaic(in, out, text)
	} else {
		err = e.stampSingle(in, out, text, row, col)
	}
	if err != nil {
		return artifact.Artifact{}, err
	}
	return artifact.Artifact{Path: out, PageCount: total}, nil
}

func (e *Engine) stampSingle(in, out, text string, row, col int) error {
	anchor := gridAnchors[clampCell(row)][clampCell(col)]
	desc := fmt.Sprintf("points:36, pos:%s, rot:0, op:0.4", anchor)

	wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("build watermark: %w", err)
	}
	if err := api.AddWatermarksFile(in, out, nil, wm, e.conf); err != nil {
		return fmt.Errorf("stamp watermark: %w", err)
	}
	return nil
}

// stampMosaic repeats the text at every grid anchor. pdfcpu applies one
// watermark per pass, so the stamps are chained through temp files and only
// the final result is promoted to the output name.
func (e *Engine) stampMosaic(in, out, text string) error {
	cur := in
	var temps []string
	defer func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}()

	for _, anchorRow := range gridAnchors {
		for _, anchor := range anchorRow {
			next := filepath.Join(filepath.Dir(out), "wm_"+uuid.NewString()+".pdf")
			desc := fmt.Sprintf("points:24, pos:%s, rot:0, op:0.3", anchor)

			wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
			if err != nil {
				return fmt.Errorf("build watermark: %w", err)
			}
			if err := api.AddWatermarksFile(cur, next, nil, wm, e.conf); err != nil {
				return fmt.Errorf("stamp watermark at %s: %w", anchor, err)
			}
			temps = append(temps, next)
			cur = next
		}
	}

	if err := os.Rename(cur, out); err != nil {
		return fmt.Errorf("finalize mosaic watermark: %w", err)
	}
	// The renamed file is no longer a temp.
	temps = temps[:len(temps)-1]
	return nil
}

func clampCell(v int) int {
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}
