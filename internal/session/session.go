// Package session holds the per-user workflow state: the active mode and the
// in-progress drafts for merge, watermark and the page editor.
package session

// Mode is the active workflow tag governing how the next incoming event is
// interpreted.
type Mode uint8

const (
	// ModeCompress is the default: any received PDF is compressed.
	ModeCompress Mode = iota
	ModeMerge
	ModeSplit
	ModePDFText
	ModeDocToPDF
	ModeOCR
	ModeSearchable
	ModeWatermark
	ModeWatermarkWaitText
	ModeWatermarkWaitStyle
	ModePagesWaitPDF
	ModePagesMenu
	ModePagesRotateWaitPages
	ModePagesRotateWaitAngle
	ModePagesDeleteWaitPages
	ModePagesExtractWaitPages
)

var modeNames = map[Mode]string{
	ModeCompress:              "compress",
	ModeMerge:                 "merge",
	ModeSplit:                 "split",
	ModePDFText:               "pdf_text",
	ModeDocToPDF:              "doc_to_pdf",
	ModeOCR:                   "ocr",
	ModeSearchable:            "searchable_pdf",
	ModeWatermark:             "watermark",
	ModeWatermarkWaitText:     "watermark_wait_text",
	ModeWatermarkWaitStyle:    "watermark_wait_style",
	ModePagesWaitPDF:          "pages_wait_pdf",
	ModePagesMenu:             "pages_menu",
	ModePagesRotateWaitPages:  "pages_rotate_wait_pages",
	ModePagesRotateWaitAngle:  "pages_rotate_wait_angle",
	ModePagesDeleteWaitPages:  "pages_delete_wait_pages",
	ModePagesExtractWaitPages: "pages_extract_wait_pages",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// PagesEditor reports whether the mode belongs to the page-editor workflow.
func (m Mode) PagesEditor() bool {
	switch m {
	case ModePagesWaitPDF, ModePagesMenu, ModePagesRotateWaitPages,
		ModePagesRotateWaitAngle, ModePagesDeleteWaitPages, ModePagesExtractWaitPages:
		return true
	}
	return false
}

// WatermarkFlow reports whether the mode belongs to the watermark workflow.
func (m Mode) WatermarkFlow() bool {
	return m == ModeWatermark || m == ModeWatermarkWaitText || m == ModeWatermarkWaitStyle
}

// Premium reports whether the mode's workflow requires an active subscription.
// The gate is re-checked at every action, not only at mode entry.
func (m Mode) Premium() bool {
	return m == ModeOCR || m == ModeSearchable || m.WatermarkFlow() || m.PagesEditor()
}

// WatermarkDraft accumulates the two-phase watermark configuration: the source
// document, then the free-text string, then the position/tiling choice.
type WatermarkDraft struct {
	Source string
	Text   string
	Row    int
	Col    int
	Mosaic bool
}

// PageEditorDraft tracks the document being edited. PendingPages stages a page
// selection between the "which pages" and "which angle" rotate steps; it is
// dropped whenever the tracked artifact or page count changes so a selection
// can never refer to pages of a previous revision.
type PageEditorDraft struct {
	Artifact     string
	PageCount    int
	PendingPages []int
}

// Load replaces the tracked document and invalidates any staged selection.
func (d *PageEditorDraft) Load(path string, pages int) {
	d.Artifact = path
	d.PageCount = pages
	d.PendingPages = nil
}

// MaxMergeFiles caps the merge queue; further documents are rejected without
// touching the queued ones.
const MaxMergeFiles = 10

// MinMergeFiles is the smallest queue a merge will run on.
const MinMergeFiles = 2

// Session is the per-user record. It is only ever read or mutated while the
// store's per-user lock is held.
type Session struct {
	Mode       Mode
	MergeQueue []string
	Watermark  *WatermarkDraft
	PageEditor *PageEditorDraft
}

// EnterWorkflow resets every feature draft and switches to the workflow's
// initial mode. Clearing before entry prevents artifacts of a previous
// workflow from leaking into the new one.
func (s *Session) EnterWorkflow(m Mode) {
	s.MergeQueue = nil
	s.Watermark = nil
	s.PageEditor = nil
	s.Mode = m
}

// AppendMerge adds an artifact to the merge queue, preserving insertion order.
// It reports whether the append was accepted and the resulting queue length.
func (s *Session) AppendMerge(path string) (bool, int) {
	if len(s.MergeQueue) >= MaxMergeFiles {
		return false, len(s.MergeQueue)
	}
	s.MergeQueue = append(s.MergeQueue, path)
	return true, len(s.MergeQueue)
}
