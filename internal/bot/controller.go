package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
	"github.com/pdfdesk/pdfdesk/internal/convert"
	"github.com/pdfdesk/pdfdesk/internal/pagerange"
	"github.com/pdfdesk/pdfdesk/internal/pdfops"
	"github.com/pdfdesk/pdfdesk/internal/session"
	"github.com/pdfdesk/pdfdesk/internal/subscription"
)

// mergeDoneWords finalize the merge queue, matched case-insensitively.
var mergeDoneWords = map[string]bool{
	"done":   true,
	"готово": true,
	"/done":  true,
	"/merge": true,
}

// splitSendLimit is the largest page count sent as individual files; bigger
// documents go back as one zip archive.
const splitSendLimit = 10

// Transformer is the PDF operation surface the controller drives.
type Transformer interface {
	PageCount(path string) (int, error)
	Compress(in string) (artifact.Artifact, error)
	Merge(paths []string) (artifact.Artifact, error)
	Split(in string) ([]string, error)
	Archive(paths []string, out string) error
	Rotate(in string, pages []int, angle int) (artifact.Artifact, error)
	Delete(in string, pages []int) (artifact.Artifact, error)
	Extract(in string, pages []int, rawSpec string) (artifact.Artifact, error)
	ExtractText(in string) (string, error)
	Watermark(in, text string, row, col int, mosaic bool) (artifact.Artifact, error)
}

// Recognizer is the OCR surface.
type Recognizer interface {
	PDFToText(ctx context.Context, in string) (string, error)
	ImageToText(ctx context.Context, in string) (string, error)
	SearchableFromPDF(ctx context.Context, in string) (artifact.Artifact, error)
	SearchableFromImage(ctx context.Context, in string) (artifact.Artifact, error)
}

// Converter turns office documents into PDFs.
type Converter interface {
	ToPDF(ctx context.Context, in string) (string, error)
}

// Redeemer exchanges promo codes for premium days. Optional; nil disables
// the /promo command.
type Redeemer interface {
	Redeem(ctx context.Context, userID int64, code string) (int, error)
}

// Controller interprets events against the session state machine.
type Controller struct {
	sessions *session.Store
	pdf      Transformer
	ocr      Recognizer
	office   Converter
	tier     subscription.Service
	promos   Redeemer
	sender   Sender
	dl       Downloader
	msgs     *Messages
	log      *logrus.Logger
}

func NewController(
	sessions *session.Store,
	pdf Transformer,
	ocr Recognizer,
	office Converter,
	tier subscription.Service,
	promos Redeemer,
	sender Sender,
	dl Downloader,
	msgs *Messages,
	log *logrus.Logger,
) *Controller {
	return &Controller{
		sessions: sessions,
		pdf:      pdf,
		ocr:      ocr,
		office:   office,
		tier:     tier,
		promos:   promos,
		sender:   sender,
		dl:       dl,
		msgs:     msgs,
		log:      log,
	}
}

// workflows maps menu labels to workflow entry modes and prompts.
func (c *Controller) workflows() map[string]struct {
	mode   session.Mode
	prompt string
} {
	m := c.msgs
	return map[string]struct {
		mode   session.Mode
		prompt string
	}{
		m.MenuCompress:   {session.ModeCompress, m.PromptCompress},
		m.MenuMerge:      {session.ModeMerge, m.PromptMerge},
		m.MenuSplit:      {session.ModeSplit, m.PromptSplit},
		m.MenuPDFText:    {session.ModePDFText, m.PromptPDFText},
		m.MenuDocToPDF:   {session.ModeDocToPDF, m.PromptDocToPDF},
		m.MenuOCR:        {session.ModeOCR, m.PromptOCR},
		m.MenuSearchable: {session.ModeSearchable, m.PromptSearchable},
		m.MenuWatermark:  {session.ModeWatermark, m.PromptWatermark},
		m.MenuPages:      {session.ModePagesWaitPDF, m.PromptPages},
	}
}

// HandleText processes a plain message.
func (c *Controller) HandleText(ctx context.Context, ev TextEvent) {
	s, release := c.sessions.Acquire(ev.UserID)
	defer release()

	text := strings.TrimSpace(ev.Text)

	switch {
	case text == "/start" || text == "/help":
		c.reply(ctx, ev.ChatID, c.msgs.Welcome, mainKeyboard(c.msgs))
		return
	case strings.HasPrefix(text, "/promo"):
		c.handlePromo(ctx, ev.UserID, ev.ChatID, text)
		return
	}

	if wf, ok := c.workflows()[text]; ok {
		if wf.mode.Premium() && !c.premium(ctx, ev.UserID, ev.ChatID) {
			return
		}
		s.EnterWorkflow(wf.mode)
		c.reply(ctx, ev.ChatID, wf.prompt, nil)
		return
	}

	switch s.Mode {
	case session.ModeMerge:
		c.mergeText(ctx, ev.ChatID, s, text)
	case session.ModeWatermarkWaitText:
		c.watermarkText(ctx, ev.UserID, ev.ChatID, s, ev.Text)
	case session.ModePagesRotateWaitPages:
		c.pageSelection(ctx, ev, s, text, c.stageRotatePages)
	case session.ModePagesDeleteWaitPages:
		c.pageSelection(ctx, ev, s, text, c.deletePages)
	case session.ModePagesExtractWaitPages:
		c.pageSelection(ctx, ev, s, text, c.extractPages)
	case session.ModePagesRotateWaitAngle:
		c.reply(ctx, ev.ChatID, c.msgs.AskAngle, angleKeyboard(c.msgs))
	case session.ModeWatermarkWaitStyle:
		if s.Watermark != nil {
			c.reply(ctx, ev.ChatID, c.msgs.WatermarkAskStyle, watermarkKeyboard(c.msgs, s.Watermark))
			return
		}
		c.reply(ctx, ev.ChatID, c.msgs.ChooseWorkflow, mainKeyboard(c.msgs))
	default:
		c.reply(ctx, ev.ChatID, c.msgs.ChooseWorkflow, mainKeyboard(c.msgs))
	}
}

// HandleDocument processes an uploaded file according to the active workflow.
func (c *Controller) HandleDocument(ctx context.Context, ev DocumentEvent) {
	s, release := c.sessions.Acquire(ev.UserID)
	defer release()

	if s.Mode.Premium() && !c.premium(ctx, ev.UserID, ev.ChatID) {
		return
	}

	limit, err := c.tier.SizeLimit(ctx, ev.UserID)
	if err != nil {
		c.fail(ctx, ev.ChatID, err)
		return
	}
	if ev.Size > limit {
		c.reply(ctx, ev.ChatID, fmt.Sprintf(c.msgs.FileTooLarge, limit>>20), nil)
		return
	}

	// Photos and image files outside a dedicated workflow are converted to
	// PDF rather than rejected.
	image := ev.Image || convert.IsImage(ev.Name)
	if requiresPDF(s.Mode) && (image || !isPDF(ev.Name)) {
		if !(image && s.Mode == session.ModeCompress) {
			c.reply(ctx, ev.ChatID, c.msgs.PDFOnly, nil)
			return
		}
	}

	path, err := c.dl.Download(ctx, ev.FileID, ev.Name)
	if err != nil {
		c.fail(ctx, ev.ChatID, err)
		return
	}

	switch s.Mode {
	case session.ModeCompress:
		if image {
			c.docToPDF(ctx, ev.ChatID, path)
			return
		}
		c.transformAndSend(ctx, ev.ChatID, func() (artifact.Artifact, error) {
			return c.pdf.Compress(path)
		})
	case session.ModeMerge:
		c.mergeDocument(ctx, ev.ChatID, s, path)
	case session.ModeSplit:
		c.splitDocument(ctx, ev.ChatID, path)
	case session.ModePDFText:
		c.pdfText(ctx, ev.ChatID, path)
	case session.ModeDocToPDF:
		c.docToPDF(ctx, ev.ChatID, path)
	case session.ModeOCR:
		c.recognize(ctx, ev, path)
	case session.ModeSearchable:
		c.searchable(ctx, ev, path)
	case session.ModeWatermark, session.ModeWatermarkWaitText, session.ModeWatermarkWaitStyle:
		// A fresh document restarts the watermark flow.
		s.Watermark = &session.WatermarkDraft{Source: path, Row: 1, Col: 1}
		s.Mode = session.ModeWatermarkWaitText
		c.reply(ctx, ev.ChatID, c.msgs.WatermarkAskText, nil)
	default:
		if s.Mode.PagesEditor() {
			c.loadPageEditor(ctx, ev.ChatID, s, path)
			return
		}
		c.reply(ctx, ev.ChatID, c.msgs.ChooseWorkflow, mainKeyboard(c.msgs))
	}
}

// HandleCallback processes an inline-button press.
func (c *Controller) HandleCallback(ctx context.Context, ev CallbackEvent) {
	s, release := c.sessions.Acquire(ev.UserID)
	defer release()

	// Leaving the editor must work even after the plan lapsed mid-edit, so
	// cancel and menu returns are not gated.
	switch ev.Data {
	case cbPagesCancel:
		s.EnterWorkflow(session.ModeCompress)
		c.reply(ctx, ev.ChatID, c.msgs.ChooseWorkflow, mainKeyboard(c.msgs))
		return
	case cbPagesMenu:
		c.showPagesMenu(ctx, ev.ChatID, s)
		return
	}

	if !c.premium(ctx, ev.UserID, ev.ChatID) {
		return
	}

	switch {
	case ev.Data == cbPagesRotate:
		c.startRotate(ctx, ev.ChatID, s)
	case ev.Data == cbPagesDelete:
		c.startSelection(ctx, ev.ChatID, s, session.ModePagesDeleteWaitPages, c.msgs.AskDeletePages)
	case ev.Data == cbPagesExtract:
		c.startSelection(ctx, ev.ChatID, s, session.ModePagesExtractWaitPages, c.msgs.AskExtractPages)
	case strings.HasPrefix(ev.Data, "angle:"):
		c.applyRotation(ctx, ev.ChatID, s, strings.TrimPrefix(ev.Data, "angle:"))
	case strings.HasPrefix(ev.Data, cbWatermarkPos):
		c.watermarkPosition(ctx, ev, s, strings.TrimPrefix(ev.Data, cbWatermarkPos))
	case ev.Data == cbWatermarkMosaic:
		c.watermarkMosaic(ctx, ev, s)
	case ev.Data == cbWatermarkApply:
		c.watermarkApply(ctx, ev.ChatID, s)
	default:
		c.log.WithField("data", ev.Data).Warn("Unknown callback tag")
	}
}

// --- merge ---

func (c *Controller) mergeText(ctx context.Context, chatID int64, s *session.Session, text string) {
	if !mergeDoneWords[strings.ToLower(text)] {
		c.reply(ctx, chatID, c.msgs.MergeHint, nil)
		return
	}
	if len(s.MergeQueue) < session.MinMergeFiles {
		c.reply(ctx, chatID, fmt.Sprintf(c.msgs.MergeNeedMore, session.MinMergeFiles), nil)
		return
	}

	out, err := c.pdf.Merge(s.MergeQueue)
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	// The queue is spent but the workflow stays active for the next batch.
	s.MergeQueue = nil
	c.sendDocument(ctx, chatID, out.Path)
}

func (c *Controller) mergeDocument(ctx context.Context, chatID int64, s *session.Session, path string) {
	ok, n := s.AppendMerge(path)
	if !ok {
		c.reply(ctx, chatID, fmt.Sprintf(c.msgs.MergeQueueFull, session.MaxMergeFiles), nil)
		return
	}
	c.reply(ctx, chatID, fmt.Sprintf(c.msgs.MergeQueued, n, session.MaxMergeFiles), nil)
}

// --- split, text, conversion, OCR ---

func (c *Controller) splitDocument(ctx context.Context, chatID int64, path string) {
	files, err := c.pdf.Split(path)
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}

	if len(files) <= splitSendLimit {
		for _, f := range files {
			c.sendDocument(ctx, chatID, f)
		}
		return
	}

	zipPath := artifact.Derived(path, "_pages", ".zip")
	if err := c.pdf.Archive(files, zipPath); err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	c.sendDocument(ctx, chatID, zipPath)
}

func (c *Controller) pdfText(ctx context.Context, chatID int64, path string) {
	text, err := c.pdf.ExtractText(path)
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		c.reply(ctx, chatID, c.msgs.NoTextFound, nil)
		return
	}

	out := artifact.Derived(path, "_text", ".txt")
	if err := writeTextFile(out, text); err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	c.sendDocument(ctx, chatID, out)
}

func (c *Controller) docToPDF(ctx context.Context, chatID int64, path string) {
	out, err := c.office.ToPDF(ctx, path)
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	c.sendDocument(ctx, chatID, out)
}

func (c *Controller) recognize(ctx context.Context, ev DocumentEvent, path string) {
	var out string
	var err error
	if ev.Image {
		out, err = c.ocr.ImageToText(ctx, path)
	} else {
		out, err = c.ocr.PDFToText(ctx, path)
	}
	if err != nil {
		c.fail(ctx, ev.ChatID, err)
		return
	}
	c.sendDocument(ctx, ev.ChatID, out)
}

func (c *Controller) searchable(ctx context.Context, ev DocumentEvent, path string) {
	var out artifact.Artifact
	var err error
	if ev.Image {
		out, err = c.ocr.SearchableFromImage(ctx, path)
	} else {
		out, err = c.ocr.SearchableFromPDF(ctx, path)
	}
	if err != nil {
		c.fail(ctx, ev.ChatID, err)
		return
	}
	c.sendDocument(ctx, ev.ChatID, out.Path)
}

// --- page editor ---

func (c *Controller) loadPageEditor(ctx context.Context, chatID int64, s *session.Session, path string) {
	count, err := c.pdf.PageCount(path)
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}

	if s.PageEditor == nil {
		s.PageEditor = &session.PageEditorDraft{}
	}
	s.PageEditor.Load(path, count)
	s.Mode = session.ModePagesMenu

	info := fmt.Sprintf(c.msgs.PagesLoaded, filepath.Base(path), count)
	c.reply(ctx, chatID, info, pagesMenuKeyboard(c.msgs))
}

func (c *Controller) showPagesMenu(ctx context.Context, chatID int64, s *session.Session) {
	draft := s.PageEditor
	if draft == nil {
		s.Mode = session.ModePagesWaitPDF
		c.reply(ctx, chatID, c.msgs.PromptPages, nil)
		return
	}
	s.Mode = session.ModePagesMenu
	info := fmt.Sprintf(c.msgs.PagesLoaded, filepath.Base(draft.Artifact), draft.PageCount)
	c.reply(ctx, chatID, info, pagesMenuKeyboard(c.msgs))
}

func (c *Controller) startRotate(ctx context.Context, chatID int64, s *session.Session) {
	draft := s.PageEditor
	if draft == nil {
		s.Mode = session.ModePagesWaitPDF
		c.reply(ctx, chatID, c.msgs.PromptPages, nil)
		return
	}

	// A single page needs no selection step.
	if draft.PageCount == 1 {
		draft.PendingPages = []int{1}
		s.Mode = session.ModePagesRotateWaitAngle
		c.reply(ctx, chatID, c.msgs.AskAngle, angleKeyboard(c.msgs))
		return
	}

	s.Mode = session.ModePagesRotateWaitPages
	c.reply(ctx, chatID, c.msgs.AskRotatePages, nil)
}

func (c *Controller) startSelection(ctx context.Context, chatID int64, s *session.Session, mode session.Mode, prompt string) {
	if s.PageEditor == nil {
		s.Mode = session.ModePagesWaitPDF
		c.reply(ctx, chatID, c.msgs.PromptPages, nil)
		return
	}
	s.Mode = mode
	c.reply(ctx, chatID, prompt, nil)
}

// pageSelection parses a page expression against the tracked document and
// hands the result to the operation-specific step.
func (c *Controller) pageSelection(ctx context.Context, ev TextEvent, s *session.Session,
	text string, apply func(context.Context, int64, *session.Session, []int, string)) {

	draft := s.PageEditor
	if draft == nil {
		s.EnterWorkflow(session.ModeCompress)
		c.reply(ctx, ev.ChatID, c.msgs.SessionExpired, mainKeyboard(c.msgs))
		return
	}

	var pages []int
	if strings.EqualFold(text, "all") {
		pages = pagerange.All(draft.PageCount)
	} else {
		pages = pagerange.Parse(text, draft.PageCount)
	}
	if len(pages) == 0 {
		c.reply(ctx, ev.ChatID, c.msgs.InvalidPages, nil)
		return
	}
	apply(ctx, ev.ChatID, s, pages, text)
}

func (c *Controller) stageRotatePages(ctx context.Context, chatID int64, s *session.Session, pages []int, _ string) {
	s.PageEditor.PendingPages = pages
	s.Mode = session.ModePagesRotateWaitAngle
	c.reply(ctx, chatID, c.msgs.AskAngle, angleKeyboard(c.msgs))
}

func (c *Controller) deletePages(ctx context.Context, chatID int64, s *session.Session, pages []int, _ string) {
	draft := s.PageEditor
	out, err := c.pdf.Delete(draft.Artifact, pages)
	if errors.Is(err, pdfops.ErrDeleteAllPages) {
		c.reply(ctx, chatID, c.msgs.DeleteAll, nil)
		return
	}
	if err != nil {
		c.pagesFail(ctx, chatID, s, err)
		return
	}

	draft.Load(out.Path, out.PageCount)
	s.Mode = session.ModePagesMenu
	c.sendDocument(ctx, chatID, out.Path)
	c.showPagesMenu(ctx, chatID, s)
}

func (c *Controller) extractPages(ctx context.Context, chatID int64, s *session.Session, pages []int, raw string) {
	draft := s.PageEditor
	out, err := c.pdf.Extract(draft.Artifact, pages, raw)
	if err != nil {
		c.pagesFail(ctx, chatID, s, err)
		return
	}

	// Extract branches off; further edits still target the same document.
	s.Mode = session.ModePagesMenu
	c.sendDocument(ctx, chatID, out.Path)
	c.showPagesMenu(ctx, chatID, s)
}

func (c *Controller) applyRotation(ctx context.Context, chatID int64, s *session.Session, angleTag string) {
	draft := s.PageEditor
	if s.Mode != session.ModePagesRotateWaitAngle || draft == nil || len(draft.PendingPages) == 0 {
		c.showPagesMenu(ctx, chatID, s)
		return
	}

	angle, err := strconv.Atoi(angleTag)
	if err != nil {
		c.log.WithField("angle", angleTag).Warn("Unknown angle tag")
		return
	}

	out, err := c.pdf.Rotate(draft.Artifact, draft.PendingPages, angle)
	if err != nil {
		c.pagesFail(ctx, chatID, s, err)
		return
	}

	draft.Load(out.Path, out.PageCount)
	s.Mode = session.ModePagesMenu
	c.sendDocument(ctx, chatID, out.Path)
	c.showPagesMenu(ctx, chatID, s)
}

// pagesFail reports a page-editor error. A vanished artifact ends the
// workflow; anything else keeps the draft so the user can retry.
func (c *Controller) pagesFail(ctx context.Context, chatID int64, s *session.Session, err error) {
	if errors.Is(err, artifact.ErrMissing) {
		s.EnterWorkflow(session.ModeCompress)
		c.reply(ctx, chatID, c.msgs.SessionExpired, mainKeyboard(c.msgs))
		return
	}
	c.fail(ctx, chatID, err)
}

// --- watermark ---

func (c *Controller) watermarkText(ctx context.Context, userID, chatID int64, s *session.Session, text string) {
	if strings.TrimSpace(text) == "" {
		c.reply(ctx, chatID, c.msgs.WatermarkEmpty, nil)
		return
	}
	if !c.premium(ctx, userID, chatID) {
		return
	}

	draft := s.Watermark
	if draft == nil {
		s.EnterWorkflow(session.ModeCompress)
		c.reply(ctx, chatID, c.msgs.WatermarkDraftLost, mainKeyboard(c.msgs))
		return
	}

	draft.Text = strings.TrimSpace(text)
	s.Mode = session.ModeWatermarkWaitStyle
	c.reply(ctx, chatID, c.msgs.WatermarkAskStyle, watermarkKeyboard(c.msgs, draft))
}

func (c *Controller) watermarkPosition(ctx context.Context, ev CallbackEvent, s *session.Session, cell string) {
	draft := s.Watermark
	if s.Mode != session.ModeWatermarkWaitStyle || draft == nil || !validCell(cell) {
		return
	}
	// The tiling toggle is independent of the position choice; both stay
	// adjustable until apply.
	draft.Row = int(cell[0] - '0')
	draft.Col = int(cell[1] - '0')
	c.refreshKeyboard(ctx, ev, watermarkKeyboard(c.msgs, draft))
}

// validCell accepts only the nine grid tags, two digits in '0'..'2'. Callback
// data arrives from the network and is not trusted.
func validCell(cell string) bool {
	if len(cell) != 2 {
		return false
	}
	return cell[0] >= '0' && cell[0] <= '2' && cell[1] >= '0' && cell[1] <= '2'
}

func (c *Controller) watermarkMosaic(ctx context.Context, ev CallbackEvent, s *session.Session) {
	draft := s.Watermark
	if s.Mode != session.ModeWatermarkWaitStyle || draft == nil {
		return
	}
	draft.Mosaic = !draft.Mosaic
	c.refreshKeyboard(ctx, ev, watermarkKeyboard(c.msgs, draft))
}

func (c *Controller) watermarkApply(ctx context.Context, chatID int64, s *session.Session) {
	draft := s.Watermark
	if s.Mode != session.ModeWatermarkWaitStyle || draft == nil || draft.Text == "" {
		s.EnterWorkflow(session.ModeCompress)
		c.reply(ctx, chatID, c.msgs.WatermarkDraftLost, mainKeyboard(c.msgs))
		return
	}

	out, err := c.pdf.Watermark(draft.Source, draft.Text, draft.Row, draft.Col, draft.Mosaic)
	if errors.Is(err, artifact.ErrMissing) {
		s.EnterWorkflow(session.ModeCompress)
		c.reply(ctx, chatID, c.msgs.SessionExpired, mainKeyboard(c.msgs))
		return
	}
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}

	s.EnterWorkflow(session.ModeCompress)
	c.sendDocument(ctx, chatID, out.Path)
	c.reply(ctx, chatID, c.msgs.ChooseWorkflow, mainKeyboard(c.msgs))
}

// --- promo ---

func (c *Controller) handlePromo(ctx context.Context, userID, chatID int64, text string) {
	if c.promos == nil {
		c.reply(ctx, chatID, c.msgs.PromoInvalid, nil)
		return
	}

	fields := strings.Fields(text)
	if len(fields) != 2 {
		c.reply(ctx, chatID, c.msgs.PromoInvalid, nil)
		return
	}

	days, err := c.promos.Redeem(ctx, userID, fields[1])
	if errors.Is(err, subscription.ErrPromoInvalid) {
		c.reply(ctx, chatID, c.msgs.PromoInvalid, nil)
		return
	}
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	c.reply(ctx, chatID, fmt.Sprintf(c.msgs.PromoRedeemed, days), nil)
}

// --- shared helpers ---

// premium checks the gate, replying with the upsell message when denied. The
// session mode is left untouched so a renewed plan resumes where it was.
func (c *Controller) premium(ctx context.Context, userID, chatID int64) bool {
	ok, err := c.tier.IsPremium(ctx, userID)
	if err != nil {
		c.fail(ctx, chatID, err)
		return false
	}
	if !ok {
		c.reply(ctx, chatID, c.msgs.PremiumRequired, nil)
	}
	return ok
}

func (c *Controller) transformAndSend(ctx context.Context, chatID int64, op func() (artifact.Artifact, error)) {
	out, err := op()
	if err != nil {
		c.fail(ctx, chatID, err)
		return
	}
	c.sendDocument(ctx, chatID, out.Path)
}

func (c *Controller) reply(ctx context.Context, chatID int64, text string, kb *Keyboard) {
	if err := c.sender.SendText(ctx, chatID, text, kb); err != nil {
		c.log.WithError(err).Error("Failed to send reply")
	}
}

func (c *Controller) sendDocument(ctx context.Context, chatID int64, path string) {
	if err := c.sender.SendDocument(ctx, chatID, path); err != nil {
		c.log.WithError(err).Error("Failed to send document")
	}
}

func (c *Controller) refreshKeyboard(ctx context.Context, ev CallbackEvent, kb *Keyboard) {
	if err := c.sender.EditKeyboard(ctx, ev.ChatID, ev.MessageID, kb); err != nil {
		c.log.WithError(err).Error("Failed to refresh keyboard")
	}
}

func (c *Controller) fail(ctx context.Context, chatID int64, err error) {
	c.log.WithError(err).Error("Operation failed")
	if errors.Is(err, artifact.ErrMissing) {
		c.reply(ctx, chatID, c.msgs.SessionExpired, nil)
		return
	}
	c.reply(ctx, chatID, c.msgs.Failed, nil)
}

// requiresPDF reports whether the mode only accepts PDF uploads.
func requiresPDF(m session.Mode) bool {
	switch m {
	case session.ModeDocToPDF, session.ModeOCR, session.ModeSearchable:
		return false
	}
	return true
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func writeTextFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("write text output: %w", err)
	}
	return nil
}
