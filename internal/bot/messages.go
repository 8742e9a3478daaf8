package bot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Messages is the reply-text table. Deployments can override any entry with a
// YAML file, e.g. to localize the bot.
type Messages struct {
	Welcome string `yaml:"welcome"`

	MenuCompress   string `yaml:"menu_compress"`
	MenuMerge      string `yaml:"menu_merge"`
	MenuSplit      string `yaml:"menu_split"`
	MenuPDFText    string `yaml:"menu_pdf_text"`
	MenuDocToPDF   string `yaml:"menu_doc_to_pdf"`
	MenuOCR        string `yaml:"menu_ocr"`
	MenuSearchable string `yaml:"menu_searchable"`
	MenuWatermark  string `yaml:"menu_watermark"`
	MenuPages      string `yaml:"menu_pages"`

	PromptCompress   string `yaml:"prompt_compress"`
	PromptMerge      string `yaml:"prompt_merge"`
	PromptSplit      string `yaml:"prompt_split"`
	PromptPDFText    string `yaml:"prompt_pdf_text"`
	PromptDocToPDF   string `yaml:"prompt_doc_to_pdf"`
	PromptOCR        string `yaml:"prompt_ocr"`
	PromptSearchable string `yaml:"prompt_searchable"`
	PromptWatermark  string `yaml:"prompt_watermark"`
	PromptPages      string `yaml:"prompt_pages"`

	BtnRotate    string `yaml:"btn_rotate"`
	BtnDelete    string `yaml:"btn_delete"`
	BtnExtract   string `yaml:"btn_extract"`
	BtnCancel    string `yaml:"btn_cancel"`
	BtnBack      string `yaml:"btn_back"`
	BtnMosaicOn  string `yaml:"btn_mosaic_on"`
	BtnMosaicOff string `yaml:"btn_mosaic_off"`
	BtnApply     string `yaml:"btn_apply"`

	MergeQueued    string `yaml:"merge_queued"`
	MergeQueueFull string `yaml:"merge_queue_full"`
	MergeNeedMore  string `yaml:"merge_need_more"`
	MergeHint      string `yaml:"merge_hint"`

	PagesLoaded     string `yaml:"pages_loaded"`
	AskRotatePages  string `yaml:"ask_rotate_pages"`
	AskDeletePages  string `yaml:"ask_delete_pages"`
	AskExtractPages string `yaml:"ask_extract_pages"`
	AskAngle        string `yaml:"ask_angle"`
	InvalidPages    string `yaml:"invalid_pages"`
	DeleteAll       string `yaml:"delete_all"`

	WatermarkAskText   string `yaml:"watermark_ask_text"`
	WatermarkEmpty     string `yaml:"watermark_empty"`
	WatermarkAskStyle  string `yaml:"watermark_ask_style"`
	WatermarkDraftLost string `yaml:"watermark_draft_lost"`

	NoTextFound     string `yaml:"no_text_found"`
	PremiumRequired string `yaml:"premium_required"`
	FileTooLarge    string `yaml:"file_too_large"`
	PDFOnly         string `yaml:"pdf_only"`
	Unsupported     string `yaml:"unsupported"`
	SessionExpired  string `yaml:"session_expired"`
	Failed          string `yaml:"failed"`
	ChooseWorkflow  string `yaml:"choose_workflow"`

	PromoRedeemed string `yaml:"promo_redeemed"`
	PromoInvalid  string `yaml:"promo_invalid"`
}

// DefaultMessages returns the built-in English reply texts.
func DefaultMessages() *Messages {
	return &Messages{
		Welcome: "Hi! Pick a workflow below, then send me a document.",

		MenuCompress:   "🗜 Compress PDF",
		MenuMerge:      "➕ Merge PDFs",
		MenuSplit:      "✂️ Split PDF",
		MenuPDFText:    "📄 PDF → Text",
		MenuDocToPDF:   "📎 Document → PDF",
		MenuOCR:        "🔍 Text from Scan",
		MenuSearchable: "🔎 Searchable PDF",
		MenuWatermark:  "💧 Watermark",
		MenuPages:      "📑 Page Editor",

		PromptCompress:   "Send me a PDF to compress.",
		PromptMerge:      "Send the PDFs one by one (2 to 10), then say \"done\".",
		PromptSplit:      "Send me a PDF to split into single pages.",
		PromptPDFText:    "Send me a PDF and I'll extract its text.",
		PromptDocToPDF:   "Send me an office document (DOCX, XLSX, PPTX…) to convert.",
		PromptOCR:        "Send me a scanned PDF or a photo to recognize.",
		PromptSearchable: "Send me a scanned PDF or a photo to make searchable.",
		PromptWatermark:  "Send me the PDF to watermark.",
		PromptPages:      "Send me the PDF you want to edit.",

		BtnRotate:    "🔄 Rotate",
		BtnDelete:    "🗑 Delete",
		BtnExtract:   "📤 Extract",
		BtnCancel:    "✖️ Done editing",
		BtnBack:      "⬅️ Back",
		BtnMosaicOn:  "Tile across page: on",
		BtnMosaicOff: "Tile across page: off",
		BtnApply:     "✅ Apply",

		MergeQueued:    "Queued %d of %d. Send more or say \"done\".",
		MergeQueueFull: "The queue is full (%d files). Say \"done\" to merge them.",
		MergeNeedMore:  "I need at least %d files to merge. Send another PDF.",
		MergeHint:      "Send another PDF, or say \"done\" to merge.",

		PagesLoaded:     "Loaded %s (%d pages). What should I do?",
		AskRotatePages:  "Which pages should I rotate? E.g. 1-3,5 or \"all\".",
		AskDeletePages:  "Which pages should I delete? E.g. 1-3,5.",
		AskExtractPages: "Which pages should I extract? E.g. 1-3,5.",
		AskAngle:        "Pick the rotation angle.",
		InvalidPages:    "I couldn't read that page selection. Try something like 1-3,5.",
		DeleteAll:       "That would delete every page. Leave at least one.",

		WatermarkAskText:   "What text should the watermark say?",
		WatermarkEmpty:     "The watermark text can't be empty. Send me some text.",
		WatermarkAskStyle:  "Pick the position, or tile it across the page.",
		WatermarkDraftLost: "That watermark setup is gone. Pick a workflow to start over.",

		NoTextFound:     "I found no text layer in that PDF. Try the Text from Scan workflow.",
		PremiumRequired: "That workflow needs an active premium plan.",
		FileTooLarge:    "That file is too big for your plan (limit %d MB).",
		PDFOnly:         "This workflow only accepts PDF files.",
		Unsupported:     "I can't convert that file format.",
		SessionExpired:  "That document has expired. Please send it again.",
		Failed:          "Sorry, that didn't work. Please try again.",
		ChooseWorkflow:  "Pick a workflow from the menu first.",

		PromoRedeemed: "Promo code accepted: %d days of premium added.",
		PromoInvalid:  "That promo code is not valid.",
	}
}

// LoadMessages reads a YAML override file over the defaults. Entries missing
// from the file keep their default text.
func LoadMessages(path string) (*Messages, error) {
	m := DefaultMessages()
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages file: %w", err)
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse messages file: %w", err)
	}
	return m, nil
}
