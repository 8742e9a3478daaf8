// Package bot routes incoming chat events through the per-user session state
// machine and invokes the document transforms.
package bot

import "context"

// DocumentEvent is an uploaded file. Size is known before download so the
// plan limit can be enforced without fetching the payload.
type DocumentEvent struct {
	UserID int64
	ChatID int64
	FileID string
	Name   string
	Size   int64
	// Image marks photo uploads, which OCR accepts directly.
	Image bool
}

// TextEvent is a plain message: a menu selection, a page-range expression, a
// merge completion keyword or watermark text, depending on the session mode.
type TextEvent struct {
	UserID int64
	ChatID int64
	Text   string
}

// CallbackEvent is an inline-button press. Data carries the button tag.
type CallbackEvent struct {
	UserID    int64
	ChatID    int64
	MessageID int
	Data      string
}

// Button is one keyboard cell. Data is set for inline buttons and empty for
// reply-keyboard buttons.
type Button struct {
	Label string
	Data  string
}

// Keyboard is a grid of buttons, inline or attached to the reply box.
type Keyboard struct {
	Inline bool
	Rows   [][]Button
}

// Sender delivers replies back to the chat. The transport adapter implements
// it; tests use a recording stub.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	SendDocument(ctx context.Context, chatID int64, path string) error
	EditKeyboard(ctx context.Context, chatID int64, messageID int, kb *Keyboard) error
}

// Downloader fetches an uploaded file into the working directory and returns
// its local path.
type Downloader interface {
	Download(ctx context.Context, fileID, name string) (string, error)
}
