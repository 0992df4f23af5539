// Package notify formats and delivers task notifications to the
// department Telegram channels. Delivery is strictly best effort: every
// outcome is reported as a boolean and nothing here can fail into the
// core.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/iliyamo/goaltrack/internal/model"
)

// Notification kinds.
const (
	KindNew      = "new"
	KindReminder = "reminder"
)

// DefaultAPIBase is the Telegram Bot API endpoint prefix.
const DefaultAPIBase = "https://api.telegram.org"

// BuildTaskMessage renders the fixed bilingual HTML template for a
// topic notification. The layout matches the messages departments have
// been receiving historically.
func BuildTaskMessage(t model.Topic, kind string) string {
	icon, heading := "🆕", "مهمة جديدة"
	if kind == KindReminder {
		icon, heading = "⏰", "تذكير بمهمة"
	}
	return fmt.Sprintf(`
<b>%s %s</b>

<b>العنوان:</b> %s
<b>الأولوية:</b> %s
<b>المرسل:</b> %s
<b>موعد التسليم:</b> %s

<b>التفاصيل:</b>
%s

<i>يرجى المتابعة والإنجاز.</i>
`, icon, heading, t.Title, t.Priority, t.Sender, t.DueDate, t.Details)
}

// TelegramSender posts messages through the Bot API. Token is read per
// send so a token updated in settings takes effect immediately.
type TelegramSender struct {
	APIBase string
	Token   func() string
	Client  *http.Client
}

func NewTelegramSender(apiBase string, token func() string) *TelegramSender {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &TelegramSender{
		APIBase: apiBase,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one HTML message to a chat. Missing token or chat id,
// transport failures and non-ok API answers all come back as false.
func (s *TelegramSender) Send(ctx context.Context, chatID, text string) bool {
	token := s.Token()
	if token == "" {
		log.Printf("notify: telegram token not configured")
		return false
	}
	if chatID == "" {
		log.Printf("notify: chat id missing")
		return false
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return false
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", s.APIBase, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		log.Printf("notify: telegram send failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false
	}
	return out.OK
}

// SendTaskNotification formats the template for a topic and delivers it
// to the department chat.
func (s *TelegramSender) SendTaskNotification(ctx context.Context, t model.Topic, chatID, kind string) bool {
	if chatID == "" {
		return false
	}
	return s.Send(ctx, chatID, BuildTaskMessage(t, kind))
}
