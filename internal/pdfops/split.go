package pdfops

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
)

var splitPageNum = regexp.MustCompile(`_(\d+)\.pdf$`)

// Split writes one single-page PDF per page of the input and returns their
// paths in page order. The files land in a fresh subdirectory next to the
// input so the retention sweep picks them up with everything else.
func (e *Engine) Split(in string) ([]string, error) {
	if _, err := artifact.Stat(in); err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	outDir, err := os.MkdirTemp(filepath.Dir(in), stem+"_pages_")
	if err != nil {
		return nil, fmt.Errorf("create split directory: %w", err)
	}

	if err := api.SplitFile(in, outDir, 1, e.conf); err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(outDir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("list split pages: %w", err)
	}

	// pdfcpu names pages <stem>_<n>.pdf; sort numerically, not lexically.
	sort.Slice(files, func(i, j int) bool {
		return splitPageIndex(files[i]) < splitPageIndex(files[j])
	})
	return files, nil
}

func splitPageIndex(path string) int {
	m := splitPageNum.FindStringSubmatch(path)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// Archive zips the given files into out, storing each under its base name.
func (e *Engine) Archive(paths []string, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range paths {
		src, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open %s: %w", p, err)
		}
		w, err := zw.Create(filepath.Base(p))
		if err != nil {
			src.Close()
			return fmt.Errorf("add %s to archive: %w", p, err)
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return fmt.Errorf("write %s to archive: %w", p, err)
		}
		src.Close()
	}
	return zw.Close()
}
