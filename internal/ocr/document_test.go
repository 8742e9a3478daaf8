package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	text     string
	pagesErr error
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Recognize(_ context.Context, imagePath string) (string, error) {
	if s.pagesErr != nil {
		return "", s.pagesErr
	}
	return s.text + " " + filepath.Base(imagePath), nil
}

func (s *stubEngine) SearchablePage(_ context.Context, _, outPDF string) error {
	return os.WriteFile(outPDF, []byte("%PDF-1.4"), 0o600)
}

func TestImageToText(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(in, []byte("png"), 0o600))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	p := NewProcessor(&stubEngine{text: "hello"}, nil, log)

	out, err := p.ImageToText(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scan_ocr.txt"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello scan.png", string(data))
}

func TestImageToTextNoText(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	p := NewProcessor(&stubEngine{pagesErr: ErrNoText}, nil, log)

	_, err := p.ImageToText(context.Background(), "any.png")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestSearchableFromImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "scan.jpg")
	require.NoError(t, os.WriteFile(in, []byte("jpg"), 0o600))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	p := NewProcessor(&stubEngine{}, nil, log)

	out, err := p.SearchableFromImage(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scan_searchable.pdf"), out.Path)
	assert.Equal(t, 1, out.PageCount)
	assert.FileExists(t, out.Path)
}
