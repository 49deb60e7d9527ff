package main

import (
	"Resonator/internal/config"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type Bot struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewBot(token string) *Bot {
	return &Bot{
		BaseURL:    "https://api.telegram.org/bot" + token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.BotToken == "" {
		slog.Error("TOKEN_BOT missing")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := NewBot(cfg.BotToken)
	slog.Info("bot polling started")
	bot.Run(ctx)
	slog.Info("bot stopped")
}

func (b *Bot) Run(ctx context.Context) {
	offset := 0
	for ctx.Err() == nil {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("getUpdates failed", "error", err)
			sleep(ctx, 2*time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			b.handleUpdate(ctx, u)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, u Update) {
	switch {
	case u.CallbackQuery != nil:
		cb := u.CallbackQuery
		if cb.Message == nil {
			b.answerCallback(ctx, cb.ID, "Message expired")
			return
		}
		reply, err := handleOctave(cb.Data)
		if err != nil {
			slog.Debug("bad callback", "data", cb.Data, "error", err)
			b.answerCallback(ctx, cb.ID, "Unknown octave")
			return
		}
		b.answerCallback(ctx, cb.ID, "")
		b.editMessage(ctx, cb.Message.Chat.ID, cb.Message.MessageID, reply)
	case u.Message != nil && u.Message.Text != "":
		b.sendMessage(ctx, u.Message.Chat.ID, handleCommand(u.Message.Text))
	}
}

func (b *Bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	url := fmt.Sprintf("%s/getUpdates?timeout=20&offset=%d", b.BaseURL, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("getUpdates: not ok (status %d)", res.StatusCode)
	}
	return out.Result, nil
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, r Reply) {
	payload := map[string]any{"chat_id": chatID, "text": r.Text}
	if r.Markup != nil {
		payload["reply_markup"] = r.Markup
	}
	b.post(ctx, "sendMessage", payload)
}

func (b *Bot) editMessage(ctx context.Context, chatID int64, messageID int, r Reply) {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       r.Text,
	}
	if r.Markup != nil {
		payload["reply_markup"] = r.Markup
	}
	b.post(ctx, "editMessageText", payload)
}

func (b *Bot) answerCallback(ctx context.Context, id, text string) {
	b.post(ctx, "answerCallbackQuery", map[string]any{"callback_query_id": id, "text": text})
}

func (b *Bot) post(ctx context.Context, method string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "method", method, "error", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		slog.Error("build request", "method", method, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := b.HTTPClient.Do(req)
	if err != nil {
		slog.Warn("telegram call failed", "method", method, "error", err)
		return
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		slog.Warn("telegram call rejected", "method", method, "status", res.StatusCode)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
