// Package artifact manages the working directory of generated files and the
// lineage-based naming scheme shared by all transforms.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Suffixes appended to an input's stem by each transform. An artifact is never
// mutated in place: every operation reads one file and writes a new one whose
// name records where it came from.
const (
	SuffixRotated    = "_rotated"
	SuffixDeleted    = "_deleted"
	SuffixMerged     = "_merged"
	SuffixWatermark  = "_watermark"
	SuffixSearchable = "_searchable"
	PrefixCompressed = "compressed_"
)

// ErrMissing indicates the artifact file referenced by a session no longer
// exists on disk, typically because the retention sweep removed it. Callers
// treat this as an expired session, not a crash.
var ErrMissing = fmt.Errorf("artifact file no longer exists")

// Artifact is an immutable output file produced by one transform step.
type Artifact struct {
	Path      string
	PageCount int
}

// Dir is the shared working directory that holds downloads and transform
// outputs.
type Dir struct {
	Root string
}

// NewDir ensures the working directory exists.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	return &Dir{Root: root}, nil
}

// Join resolves a file name inside the working directory. Any path components
// in name are stripped so an uploaded filename cannot escape the directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.Root, filepath.Base(name))
}

// Derived builds the output path for a transform of src: the source stem plus
// suffix, with the given extension, in the same directory as src.
func Derived(src, suffix, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), stem+suffix+ext)
}

// DerivedPDF is Derived with a .pdf extension.
func DerivedPDF(src, suffix string) string {
	return Derived(src, suffix, ".pdf")
}

// ExtractSuffix converts a raw page-range expression into the suffix used for
// extract outputs, e.g. "1,3-5" -> "_extract_1_3_5".
func ExtractSuffix(rawSpec string) string {
	safe := strings.NewReplacer(",", "_", "-", "_", " ", "").Replace(rawSpec)
	return "_extract_" + safe
}

// Stat verifies the artifact file is still present, mapping a vanished file to
// ErrMissing.
func Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, ErrMissing
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}
