// Package convert turns office documents and images into PDFs through a
// headless LibreOffice subprocess.
package convert

import (
	"archive/zip"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

// OfficeExtensions lists the office formats accepted for conversion.
var OfficeExtensions = map[string]bool{
	".doc":  true,
	".docx": true,
	".odt":  true,
	".rtf":  true,
	".xls":  true,
	".xlsx": true,
	".ods":  true,
	".ppt":  true,
	".pptx": true,
	".odp":  true,
	".txt":  true,
}

// ImageExtensions lists the image formats accepted for conversion. LibreOffice
// Draw places each image on its own PDF page.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Office converts documents with a soffice binary in headless mode.
type Office struct {
	// Binary is the LibreOffice executable, normally "soffice".
	Binary string
	log    *logrus.Logger
}

func NewOffice(log *logrus.Logger) *Office {
	return &Office{Binary: "soffice", log: log}
}

// Supported reports whether the file extension is a convertible format,
// office document or image.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return OfficeExtensions[ext] || ImageExtensions[ext]
}

// IsImage reports whether the file extension is a convertible image format.
func IsImage(name string) bool {
	return ImageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ToPDF converts an office document or image to PDF in the same directory and
// returns the output path. LibreOffice exits zero even on some failed
// conversions, so the output file is verified as well.
func (o *Office) ToPDF(ctx context.Context, in string) (string, error) {
	if _, err := artifact.Stat(in); err != nil {
		return "", err
	}
	if !Supported(in) {
		return "", fmt.Errorf("unsupported document format %q", filepath.Ext(in))
	}

	outDir := filepath.Dir(in)
	cmd := exec.CommandContext(ctx, o.Binary,
		"--headless", "--nologo", "--convert-to", "pdf", "--outdir", outDir, in)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("office conversion: %w: %s", err, strings.TrimSpace(string(output)))
	}

	out := artifact.DerivedPDF(in, "")
	if _, err := artifact.Stat(out); err != nil {
		return "", fmt.Errorf("conversion produced no output for %s", filepath.Base(in))
	}

	o.log.WithField("file", filepath.Base(in)).Debug("Converted office document")
	return out, nil
}

// HasEmbeddedFonts reports whether a .docx archive carries embedded font
// binaries. Documents with embedded fonts convert with higher fidelity.
func HasEmbeddedFonts(docxPath string) (bool, error) {
	r, err := zip.OpenReader(docxPath)
	if err != nil {
		return false, fmt.Errorf("open document archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "word/fonts/") && strings.HasSuffix(f.Name, ".odttf") {
			return true, nil
		}
	}
	return false, nil
}
