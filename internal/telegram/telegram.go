// Package telegram adapts the Bot API transport: it long-polls for updates,
// converts them into controller events and renders replies. No workflow
// logic lives here.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/pdfdesk/pdfdesk/internal/artifact"
	"github.com/pdfdesk/pdfdesk/internal/bot"
)

// Handler receives the converted events. The controller implements it.
type Handler interface {
	HandleDocument(ctx context.Context, ev bot.DocumentEvent)
	HandleText(ctx context.Context, ev bot.TextEvent)
	HandleCallback(ctx context.Context, ev bot.CallbackEvent)
}

// Bot is the transport adapter. It implements bot.Sender and bot.Downloader.
type Bot struct {
	api   *tgbotapi.BotAPI
	files *artifact.Dir
	log   *logrus.Logger
}

func New(token string, files *artifact.Dir, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to bot api: %w", err)
	}
	log.WithField("username", api.Self.UserName).Info("Authorized with Telegram")
	return &Bot{api: api, files: files, log: log}, nil
}

// Run long-polls for updates until the context is cancelled. Each update is
// handled on its own goroutine; the session store serializes per user.
func (b *Bot) Run(ctx context.Context, h Handler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.dispatch(ctx, h, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, h Handler, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("panic", r).Error("Update handler panicked")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		// Ack first so the button spinner stops even if handling is slow.
		if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			b.log.WithError(err).Warn("Callback ack failed")
		}
		h.HandleCallback(ctx, bot.CallbackEvent{
			UserID:    q.From.ID,
			ChatID:    q.Message.Chat.ID,
			MessageID: q.Message.MessageID,
			Data:      q.Data,
		})
	case update.Message == nil:
	case update.Message.Document != nil:
		doc := update.Message.Document
		h.HandleDocument(ctx, bot.DocumentEvent{
			UserID: update.Message.From.ID,
			ChatID: update.Message.Chat.ID,
			FileID: doc.FileID,
			Name:   doc.FileName,
			Size:   int64(doc.FileSize),
		})
	case len(update.Message.Photo) > 0:
		// Telegram sends several resolutions; the last is the largest.
		photo := update.Message.Photo[len(update.Message.Photo)-1]
		h.HandleDocument(ctx, bot.DocumentEvent{
			UserID: update.Message.From.ID,
			ChatID: update.Message.Chat.ID,
			FileID: photo.FileID,
			Name:   photo.FileUniqueID + ".jpg",
			Size:   int64(photo.FileSize),
			Image:  true,
		})
	case update.Message.Text != "":
		h.HandleText(ctx, bot.TextEvent{
			UserID: update.Message.From.ID,
			ChatID: update.Message.Chat.ID,
			Text:   update.Message.Text,
		})
	}
}

// SendText implements bot.Sender.
func (b *Bot) SendText(_ context.Context, chatID int64, text string, kb *bot.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = renderKeyboard(kb)
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendDocument implements bot.Sender.
func (b *Bot) SendDocument(_ context.Context, chatID int64, path string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// EditKeyboard implements bot.Sender.
func (b *Bot) EditKeyboard(_ context.Context, chatID int64, messageID int, kb *bot.Keyboard) error {
	markup, ok := renderKeyboard(kb).(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		return fmt.Errorf("only inline keyboards can be edited")
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, markup)
	if _, err := b.api.Send(edit); err != nil {
		return fmt.Errorf("edit keyboard: %w", err)
	}
	return nil
}

// Download implements bot.Downloader: it fetches the uploaded file into the
// working directory under its original name.
func (b *Bot) Download(ctx context.Context, fileID, name string) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	dest := b.files.Join(name)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create local file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("write local file: %w", err)
	}
	return dest, nil
}

// renderKeyboard converts the transport-neutral keyboard model into the Bot
// API markup types.
func renderKeyboard(kb *bot.Keyboard) interface{} {
	if kb.Inline {
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, row := range kb.Rows {
			var line []tgbotapi.InlineKeyboardButton
			for _, btn := range row {
				line = append(line, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
			}
			rows = append(rows, line)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	var rows [][]tgbotapi.KeyboardButton
	for _, row := range kb.Rows {
		var line []tgbotapi.KeyboardButton
		for _, btn := range row {
			line = append(line, tgbotapi.NewKeyboardButton(btn.Label))
		}
		rows = append(rows, line)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}
