package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognises text through the gosseract bindings. Searchable-page
// rendering shells out to the tesseract binary, which owns the PDF renderer.
type Tesseract struct {
	// Languages are traineddata names, e.g. "eng", "rus".
	Languages []string
	// Binary is the tesseract executable used for searchable pages.
	Binary string
}

func NewTesseract(languages ...string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Tesseract{Languages: languages, Binary: "tesseract"}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Recognize runs OCR over a single image file and returns the plain text.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := client.SetLanguage(t.Languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// SearchablePage renders the image into a one-page PDF with an invisible
// text layer at outPDF.
func (t *Tesseract) SearchablePage(ctx context.Context, imagePath, outPDF string) error {
	// tesseract appends .pdf to the output base itself.
	outBase := strings.TrimSuffix(outPDF, ".pdf")

	cmd := exec.CommandContext(ctx, t.Binary,
		imagePath, outBase, "-l", strings.Join(t.Languages, "+"), "pdf")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract pdf rendering: %w: %s", err, strings.TrimSpace(string(output)))
	}

	if _, err := os.Stat(outBase + ".pdf"); err != nil {
		return fmt.Errorf("tesseract reported success but %s is missing", filepath.Base(outBase)+".pdf")
	}
	if outBase+".pdf" != outPDF {
		return os.Rename(outBase+".pdf", outPDF)
	}
	return nil
}
