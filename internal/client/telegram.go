package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"novapanel/internal/config"
	"novapanel/internal/model"
)

// TelegramClient posts owner notifications. Callers are expected to treat
// failures as non-fatal; a missing token or chat id makes Notify a no-op.
type TelegramClient interface {
	NotifyPanelCreated(ctx context.Context, order *model.Order) error
}

type telegramClientImpl struct {
	httpClient *http.Client
	token      string
	chatID     string
	shopURL    string
}

func NewTelegramClient(cfg *config.Telegram) TelegramClient {
	return &telegramClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token:   cfg.Token,
		chatID:  cfg.OwnerChatID,
		shopURL: cfg.ShopURL,
	}
}

func (c *telegramClientImpl) NotifyPanelCreated(ctx context.Context, order *model.Order) error {
	if c.token == "" || c.chatID == "" {
		return nil
	}

	text := buildPanelCreatedMessage(order)

	payload := map[string]interface{}{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
		"reply_markup": map[string]interface{}{
			"inline_keyboard": [][]map[string]string{
				{{"text": "🛒 Buy Panel", "url": c.shopURL}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram sendMessage: %s", result.Description)
	}

	return nil
}

func buildPanelCreatedMessage(order *model.Order) string {
	var b strings.Builder
	b.WriteString("<blockquote>✅ PANEL CREATED</blockquote>\n\n")
	fmt.Fprintf(&b, "<b>📅 Time:</b> %s\n", time.Now().Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "<b>📧 Panel Email:</b> %s\n", escapeHTML(order.PanelEmail))
	fmt.Fprintf(&b, "<b>👤 Username:</b> <code>%s</code>\n", escapeHTML(order.PanelUsername))
	fmt.Fprintf(&b, "<b>🔑 Password:</b> <code>%s</code>\n", escapeHTML(order.PanelPassword))
	fmt.Fprintf(&b, "<b>📦 Plan:</b> %s\n", strings.ToUpper(order.PlanTier))
	fmt.Fprintf(&b, "<b>💰 Price:</b> Rp %d\n", order.Amount)
	fmt.Fprintf(&b, "<b>🆔 Server ID:</b> <code>%d</code>\n", order.ServerID)
	fmt.Fprintf(&b, "<b>🏷️ Server Name:</b> %s\n", escapeHTML(order.ServerName))
	fmt.Fprintf(&b, "<b>💾 RAM:</b> %s\n", model.FormatQuotaMB(order.RAMMB))
	fmt.Fprintf(&b, "<b>💿 Disk:</b> %s\n", model.FormatQuotaMB(order.DiskMB))
	fmt.Fprintf(&b, "<b>⚡ CPU:</b> %s\n", model.FormatQuotaPercent(order.CPUPercent))
	fmt.Fprintf(&b, "<b>🔗 Panel URL:</b> %s", order.PanelURL)
	return b.String()
}

func escapeHTML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	return r.Replace(text)
}
