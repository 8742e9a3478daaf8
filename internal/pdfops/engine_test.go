package pdfops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

func newTestEngine() *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(log)
}

// writeMinimalPDF builds a structurally valid n-page PDF from scratch so the
// tests do not depend on fixtures.
func writeMinimalPDF(t *testing.T, path string, pages int) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", i+3))
	}

	xrefPos := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefPos))

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestPageCount(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 5)

	n, err := e.PageCount(in)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPageCountMissingFile(t *testing.T) {
	e := newTestEngine()
	_, err := e.PageCount(filepath.Join(t.TempDir(), "gone.pdf"))
	assert.ErrorIs(t, err, artifact.ErrMissing)
}

func TestNormalizeAngle(t *testing.T) {
	assert.Equal(t, 90, normalizeAngle(90))
	assert.Equal(t, 270, normalizeAngle(-90))
	assert.Equal(t, 180, normalizeAngle(-180))
	assert.Equal(t, 90, normalizeAngle(450))
	assert.Equal(t, 0, normalizeAngle(360))
	// Four quarter turns cancel out.
	assert.Equal(t, 0, normalizeAngle(4*90))
}

func TestRotateZeroIsNoOp(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 3)

	out, err := e.Rotate(in, []int{1, 2, 3}, 360)
	require.NoError(t, err)
	assert.Equal(t, in, out.Path)
	assert.Equal(t, 3, out.PageCount)

	// No derived artifact is written for a no-op rotation.
	_, err = os.Stat(artifact.DerivedPDF(in, artifact.SuffixRotated))
	assert.True(t, os.IsNotExist(err))
}

func TestRotatePreservesPageCount(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 4)

	out, err := e.Rotate(in, []int{2, 3}, 90)
	require.NoError(t, err)
	assert.Equal(t, artifact.DerivedPDF(in, artifact.SuffixRotated), out.Path)
	assert.Equal(t, 4, out.PageCount)

	n, err := e.PageCount(out.Path)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRotateFullCycleKeepsDocumentIntact(t *testing.T) {
	e := newTestEngine()
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	writeMinimalPDF(t, in, 2)

	// Four successive +90 turns over the full page set; the engine chains
	// each output as the next input, as the page editor does.
	cur := in
	for i := 0; i < 4; i++ {
		out, err := e.Rotate(cur, []int{1, 2}, 90)
		require.NoError(t, err)
		assert.Equal(t, 2, out.PageCount)
		cur = out.Path
	}

	n, err := e.PageCount(cur)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRotateEmptySelection(t *testing.T) {
	e := newTestEngine()
	_, err := e.Rotate("whatever.pdf", nil, 90)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestDeleteSubset(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 5)

	out, err := e.Delete(in, []int{2, 4})
	require.NoError(t, err)
	assert.Equal(t, artifact.DerivedPDF(in, artifact.SuffixDeleted), out.Path)
	assert.Equal(t, 3, out.PageCount)

	n, err := e.PageCount(out.Path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// The source is untouched.
	n, err = e.PageCount(in)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestDeleteEveryPageRejected(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 3)

	_, err := e.Delete(in, []int{1, 2, 3})
	assert.ErrorIs(t, err, ErrDeleteAllPages)

	// Nothing was written and the document still has all its pages.
	_, statErr := os.Stat(artifact.DerivedPDF(in, artifact.SuffixDeleted))
	assert.True(t, os.IsNotExist(statErr))
	n, err := e.PageCount(in)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestExtractLeavesSourceUntouched(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 5)

	out, err := e.Extract(in, []int{1, 2, 3}, "3,1,2")
	require.NoError(t, err)
	assert.Equal(t, 3, out.PageCount)
	assert.Contains(t, filepath.Base(out.Path), "_extract_3_1_2")

	n, err := e.PageCount(out.Path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = e.PageCount(in)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestMergeRequiresTwoDocuments(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "only.pdf")
	writeMinimalPDF(t, in, 1)

	_, err := e.Merge(nil)
	assert.ErrorIs(t, err, ErrNeedTwoFiles)
	_, err = e.Merge([]string{in})
	assert.ErrorIs(t, err, ErrNeedTwoFiles)

	_, statErr := os.Stat(artifact.DerivedPDF(in, artifact.SuffixMerged))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMergeConcatenatesInQueueOrder(t *testing.T) {
	e := newTestEngine()
	dir := t.TempDir()

	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	c := filepath.Join(dir, "c.pdf")
	writeMinimalPDF(t, a, 2)
	writeMinimalPDF(t, b, 3)
	writeMinimalPDF(t, c, 1)

	out, err := e.Merge([]string{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, 6, out.PageCount)
	assert.Equal(t, filepath.Join(dir, "a_merged.pdf"), out.Path)
}

func TestMergeMissingInput(t *testing.T) {
	e := newTestEngine()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	writeMinimalPDF(t, a, 1)

	_, err := e.Merge([]string{a, filepath.Join(dir, "swept.pdf")})
	assert.ErrorIs(t, err, artifact.ErrMissing)
}

func TestCompressNaming(t *testing.T) {
	e := newTestEngine()
	dir := t.TempDir()
	in := filepath.Join(dir, "report.pdf")
	writeMinimalPDF(t, in, 2)

	out, err := e.Compress(in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "compressed_report.pdf"), out.Path)
	assert.Equal(t, 2, out.PageCount)
}

func TestSplitProducesOrderedPages(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 3)

	files, err := e.Split(in)
	require.NoError(t, err)
	require.Len(t, files, 3)

	for i, f := range files {
		n, err := e.PageCount(f)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, i+1, splitPageIndex(f))
	}
}

func TestArchive(t *testing.T) {
	e := newTestEngine()
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	writeMinimalPDF(t, in, 2)

	files, err := e.Split(in)
	require.NoError(t, err)

	zipPath := filepath.Join(dir, "doc_pages.zip")
	require.NoError(t, e.Archive(files, zipPath))

	info, err := os.Stat(zipPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWatermarkSingle(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 2)

	out, err := e.Watermark(in, "CONFIDENTIAL", 1, 1, false)
	require.NoError(t, err)
	assert.Equal(t, artifact.DerivedPDF(in, artifact.SuffixWatermark), out.Path)
	assert.Equal(t, 2, out.PageCount)

	n, err := e.PageCount(out.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWatermarkMosaic(t *testing.T) {
	e := newTestEngine()
	in := filepath.Join(t.TempDir(), "doc.pdf")
	writeMinimalPDF(t, in, 1)

	out, err := e.Watermark(in, "DRAFT", 0, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, out.PageCount)

	n, err := e.PageCount(out.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWatermarkCellClamping(t *testing.T) {
	assert.Equal(t, 0, clampCell(-4))
	assert.Equal(t, 2, clampCell(7))
	assert.Equal(t, 1, clampCell(1))
}
