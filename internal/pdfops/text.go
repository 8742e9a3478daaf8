package pdfops

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

// ExtractText pulls the text content of every page into one plain string.
// Extraction quality depends on the PDF structure; scanned documents come
// back empty and should go through OCR instead.
func (e *Engine) ExtractText(in string) (string, error) {
	total, err := e.PageCount(in)
	if err != nil {
		return "", err
	}

	tmp, err := os.MkdirTemp("", "pdfdesk_text_*")
	if err != nil {
		return "", fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	var sb strings.Builder
	stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))

	for page := 1; page <= total; page++ {
		sel := []string{strconv.Itoa(page)}
		if err := api.ExtractContentFile(in, tmp, sel, e.conf); err != nil {
			e.log.WithError(err).WithField("page", page).Warn("Content extraction failed, skipping page")
			continue
		}

		contentFile := filepath.Join(tmp, fmt.Sprintf("%s_Content_page_%d.txt", stem, page))
		raw, err := os.ReadFile(contentFile)
		if err != nil {
			continue
		}

		text := textFromContentStream(string(raw))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// textFromContentStream scrapes the show-text operators (Tj/TJ/'/") out of a
// raw page content stream and joins their string operands.
func textFromContentStream(content string) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, " Tj") && !strings.Contains(line, " TJ") &&
			!strings.Contains(line, "' ") && !strings.Contains(line, "\" ") {
			continue
		}
		parts = append(parts, literalStrings(line)...)
	}
	return cleanupText(strings.Join(parts, " "))
}

// literalStrings extracts the unescaped (...) string literals from one
// content-stream line.
func literalStrings(line string) []string {
	var out []string
	depth := 0
	start := -1
	for i := 0; i < len(line); i++ {
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		switch line[i] {
		case '(':
			depth++
			if depth == 1 {
				start = i + 1
			}
		case ')':
			if depth == 1 && start >= 0 && start < i {
				out = append(out, unescapeLiteral(line[start:i]))
			}
			if depth > 0 {
				depth--
			}
		}
	}
	return out
}

func unescapeLiteral(s string) string {
	r := strings.NewReplacer(
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return r.Replace(s)
}

// cleanupText strips control bytes and leftover octal escapes and collapses
// runs of whitespace.
func cleanupText(text string) string {
	text = dropOctalEscapes(text)

	var sb strings.Builder
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			sb.WriteRune(r)
		case r < 32:
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}
	text = sb.String()

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	return strings.TrimSpace(text)
}

func dropOctalEscapes(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); {
		if i+3 < len(text) && text[i] == '\\' &&
			isOctal(text[i+1]) && isOctal(text[i+2]) && isOctal(text[i+3]) {
			i += 4
			continue
		}
		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}

func isOctal(b byte) bool { return b >= '0' && b <= '7' }

// ExtractImages writes the embedded images of the selected pages (all pages
// when pages is nil) into outDir and returns their paths sorted by name.
func (e *Engine) ExtractImages(in, outDir string, pages []int) ([]string, error) {
	if _, err := artifact.Stat(in); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	var sel []string
	if len(pages) > 0 {
		sel = pageStrings(pages)
	}
	if err := api.ExtractImagesFile(in, outDir, sel, e.conf); err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	var images []string
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
			images = append(images, filepath.Join(outDir, entry.Name()))
		}
	}
	return images, nil
}
