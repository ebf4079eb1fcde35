package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

const (
	msgHelp = `🤖 Автокликер кнопки Allow.

📋 Команды:
/status — статистика текущего запуска
/stop — остановить мониторинг
/help — справка`

	msgStopping       = "⏹ Останавливаю мониторинг."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgStatsError     = "⚠️ Не удалось получить статистику."
)

// statusRecent сколько последних проходов показывает /status
const statusRecent = 5

// UpdatesAPI источник входящих сообщений; реализуется *tgbotapi.BotAPI
type UpdatesAPI interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Commands принимает команды управления из разрешённого чата.
type Commands struct {
	api    UpdatesAPI
	chatID int64
	events port.EventLog
	stop   func()
	logger *slog.Logger
}

func NewCommands(api UpdatesAPI, chatID int64, events port.EventLog, stop func(), logger *slog.Logger) *Commands {
	return &Commands{api: api, chatID: chatID, events: events, stop: stop, logger: logger}
}

// Run обрабатывает сообщения до отмены ctx
func (c *Commands) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.api.GetUpdatesChan(u)
	defer c.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			c.handleMessage(ctx, update.Message)
		}
	}
}

func (c *Commands) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// команды принимаются только из настроенного чата
	if msg.Chat == nil || msg.Chat.ID != c.chatID {
		c.logger.Warn("telegram message from unknown chat ignored")
		return
	}
	if !msg.IsCommand() {
		c.sendMessage(msgHelp)
		return
	}

	switch msg.Command() {
	case "start", "help":
		c.sendMessage(msgHelp)

	case "status":
		stats, err := c.events.Stats(ctx)
		if err != nil {
			c.logger.Warn("stats failed", "error", err)
			c.sendMessage(msgStatsError)
			return
		}
		text := FormatStats(stats)
		recent, err := c.events.Recent(ctx, statusRecent)
		if err != nil {
			c.logger.Warn("recent events failed", "error", err)
		} else if len(recent) > 0 {
			text += "\n\n" + FormatRecent(recent)
		}
		c.sendMessage(text)

	case "stop":
		c.sendMessage(msgStopping)
		c.stop()

	default:
		c.sendMessage(msgUnknownCommand)
	}
}

func (c *Commands) sendMessage(text string) {
	msg := tgbotapi.NewMessage(c.chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		c.logger.Warn("telegram send failed", "error", err)
	}
}

// FormatStats выводит статистику запуска
func FormatStats(s entity.RunStats) string {
	text := fmt.Sprintf("📊 Циклов: %d\nКликов: %d\nТестовых кликов: %d\nПропусков: %d\nПустых: %d\nОшибок: %d",
		s.Cycles, s.Clicks, s.DryRuns, s.Skips, s.Empty, s.Errors)
	if s.Last != nil {
		text += fmt.Sprintf("\nПоследний цикл: #%d (%s)", s.Last.Sequence, s.Last.Outcome)
	}
	return text
}

// FormatRecent выводит последние проходы, самый новый первым
func FormatRecent(events []entity.CycleEvent) string {
	var b strings.Builder
	b.WriteString("🕑 Последние проходы:")
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		fmt.Fprintf(&b, "\n#%d %s", e.Sequence, e.Outcome)
		switch e.Outcome {
		case entity.OutcomeClicked, entity.OutcomeDryRun:
			fmt.Fprintf(&b, " (%d, %d)", e.Decision.Point.X, e.Decision.Point.Y)
		case entity.OutcomeSkipped:
			fmt.Fprintf(&b, ": %s", e.Decision.Reason)
		case entity.OutcomeFailed:
			if e.Err != "" {
				fmt.Fprintf(&b, ": %s", e.Err)
			}
		}
	}
	return b.String()
}
