package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// queueSize сколько уведомлений может ждать отправки
const queueSize = 16

// ErrQueueFull: очередь уведомлений переполнена, событие отброшено
var ErrQueueFull = errors.New("notification queue is full")

// Sender отправляет сообщения в Telegram; реализуется *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier отправляет сообщение в чат после каждого клика.
// Отправка идёт в отдельной горутине, цикл мониторинга не ждёт сеть.
type TelegramNotifier struct {
	api    Sender
	chatID int64
	queue  chan entity.CycleEvent
	logger *slog.Logger
}

// NewBotAPI авторизуется в Telegram по токену
func NewBotAPI(token string, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	logger.Info("telegram authorized", "account", api.Self.UserName)
	return api, nil
}

func NewTelegramNotifier(api Sender, chatID int64, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		queue:  make(chan entity.CycleEvent, queueSize),
		logger: logger,
	}
}

// Notify ставит событие в очередь и не блокируется.
func (n *TelegramNotifier) Notify(ctx context.Context, event entity.CycleEvent) error {
	select {
	case n.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run отправляет уведомления из очереди до отмены ctx.
func (n *TelegramNotifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-n.queue:
			n.send(FormatClick(event))
		}
	}
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("telegram send failed", "error", err)
	}
}

// FormatClick описывает клик одной-двумя строками.
func FormatClick(event entity.CycleEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Нажата кнопка Allow в (%d, %d)", event.Decision.Point.X, event.Decision.Point.Y)
	if c := event.Candidate; c != nil {
		if c.Matched {
			fmt.Fprintf(&b, "\nТекст подтверждён, уверенность %.0f%%", c.Confidence*100)
		} else {
			b.WriteString("\nТолько по цвету")
		}
	}
	fmt.Fprintf(&b, "\n%s · цикл #%d", event.At.Format("15:04:05"), event.Sequence)
	return b.String()
}

var _ port.ClickNotifier = (*TelegramNotifier)(nil)
